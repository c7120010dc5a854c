package httptyped

import (
	"time"

	"github.com/yusufsyaifudin/appkeeper/internal/svc/appsvc"
	"github.com/yusufsyaifudin/appkeeper/internal/svc/catalogsvc"
	"github.com/yusufsyaifudin/appkeeper/internal/svc/sessionsvc"
)

type SessionEntity struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

type FormEntity struct {
	Mode   string            `json:"mode"`
	AppID  int64             `json:"appId,omitempty"`
	Status string            `json:"status,omitempty"`
	Fields appsvc.FormFields `json:"fields"`
	Errors map[string]string `json:"errors"`
}

func FormEntityFromSvc(f sessionsvc.FormState) FormEntity {
	errs := f.Errors.FieldMessages()
	if errs == nil {
		errs = map[string]string{}
	}

	return FormEntity{
		Mode:   string(f.Mode),
		AppID:  f.AppID,
		Status: string(f.Status),
		Fields: f.Fields,
		Errors: errs,
	}
}

type DialogEntity struct {
	Open        bool                   `json:"open"`
	Platforms   []string               `json:"platforms"`
	Query       string                 `json:"query"`
	Placeholder string                 `json:"placeholder"`
	Searching   bool                   `json:"searching"`
	Results     []catalogsvc.Candidate `json:"results"`
	Error       string                 `json:"error,omitempty"`
	Generation  uint64                 `json:"generation"`
}

func DialogEntityFromSvc(s catalogsvc.DialogState) DialogEntity {
	platforms := make([]string, 0, len(s.Platforms))
	for _, p := range s.Platforms {
		platforms = append(platforms, string(p))
	}

	results := s.Results
	if results == nil {
		results = make([]catalogsvc.Candidate, 0)
	}

	return DialogEntity{
		Open:        s.Open,
		Platforms:   platforms,
		Query:       s.Query,
		Placeholder: s.Placeholder,
		Searching:   s.Searching,
		Results:     results,
		Error:       s.Error,
		Generation:  s.Generation,
	}
}
