package container

import (
	"fmt"
	"time"

	"github.com/yusufsyaifudin/appkeeper/internal/svc/apprepo"
	"github.com/yusufsyaifudin/appkeeper/internal/svc/appsvc"
	"github.com/yusufsyaifudin/appkeeper/internal/svc/catalogsvc"
	"github.com/yusufsyaifudin/appkeeper/internal/svc/dashsvc"
	"github.com/yusufsyaifudin/appkeeper/internal/svc/sessionsvc"
	"github.com/yusufsyaifudin/appkeeper/pkg/cache"
	"github.com/yusufsyaifudin/appkeeper/pkg/uid"
	"github.com/yusufsyaifudin/appkeeper/pkg/validator"
	"github.com/yusufsyaifudin/appkeeper/pkg/worker"
)

type Services interface {
	UIDGen() uid.UID
	App() appsvc.Service
	Catalog() catalogsvc.Service
	Session() sessionsvc.Service
	Dashboard() dashsvc.Service
}

// ServicesDeps are the shared resources services are built on.
type ServicesDeps struct {
	UIDGen uid.UID        `validate:"required"`
	Cache  cache.Cache    `validate:"required"`
	Worker worker.Service `validate:"required"`

	Now func() time.Time `validate:"-"`
}

type ServicesImpl struct {
	uidGen  uid.UID
	app     appsvc.Service
	catalog catalogsvc.Service
	session sessionsvc.Service
	dash    dashsvc.Service
}

var _ Services = (*ServicesImpl)(nil)

func SetupServices(svcCfg ConfigServices, deps ServicesDeps) (svc *ServicesImpl, err error) {
	err = validator.Validate(deps)
	if err != nil {
		err = fmt.Errorf("services dependencies: %w", err)
		return
	}

	// ** Prepare app service at once
	appRepo := apprepo.NewInMemory()
	if svcCfg.Apps.Seed {
		err = appRepo.Seed(apprepo.SampleApps()...)
		if err != nil {
			err = fmt.Errorf("services cannot seed app repo: %w", err)
			return
		}
	}

	appService, err := appsvc.New(appsvc.DefaultServiceConfig{
		AppRepo: appRepo,
		Now:     deps.Now,
	})
	if err != nil {
		err = fmt.Errorf("services cannot get prepare app service: %w", err)
		return
	}

	// ** Prepare catalog service, search results are cached
	catalogService, err := catalogsvc.New(catalogsvc.DefaultServiceConfig{
		Catalog:        catalogsvc.NewStaticCatalog(),
		Cache:          deps.Cache,
		CacheExpiry:    svcCfg.Catalog.CacheExpiry,
		CachePrefixKey: svcCfg.Catalog.CachePrefix,
		Delay:          svcCfg.Catalog.Delay,
	})
	if err != nil {
		err = fmt.Errorf("services cannot get prepare catalog service: %w", err)
		return
	}

	// ** Prepare session service, import searches run on the worker
	sessionService, err := sessionsvc.New(sessionsvc.DefaultServiceConfig{
		UID:            deps.UIDGen,
		AppService:     appService,
		CatalogService: catalogService,
		Worker:         deps.Worker,
		Now:            deps.Now,
	})
	if err != nil {
		err = fmt.Errorf("services cannot get prepare session service: %w", err)
		return
	}

	dashService, err := dashsvc.New(dashsvc.DefaultServiceConfig{
		Now: deps.Now,
	})
	if err != nil {
		err = fmt.Errorf("services cannot get prepare dashboard service: %w", err)
		return
	}

	svc = &ServicesImpl{
		uidGen:  deps.UIDGen,
		app:     appService,
		catalog: catalogService,
		session: sessionService,
		dash:    dashService,
	}

	return svc, nil
}

func (s *ServicesImpl) UIDGen() uid.UID {
	return s.uidGen
}

func (s *ServicesImpl) App() appsvc.Service {
	return s.app
}

func (s *ServicesImpl) Catalog() catalogsvc.Service {
	return s.catalog
}

func (s *ServicesImpl) Session() sessionsvc.Service {
	return s.session
}

func (s *ServicesImpl) Dashboard() dashsvc.Service {
	return s.dash
}
