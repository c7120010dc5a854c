package httptyped

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/segmentio/encoding/json"
	"github.com/yusufsyaifudin/appkeeper/pkg/logger"
)

var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

// DecodeBody decodes the JSON request body into out, an empty body leaves out untouched.
func DecodeBody(r *http.Request, out interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("request body is nil")
	}

	defer func() {
		if _err := r.Body.Close(); _err != nil {
			logger.Error(r.Context(), "cannot close request body", logger.KV("error", _err))
		}
	}()

	err := json.NewDecoder(r.Body).Decode(out)
	if err == io.EOF {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed decode request body: %w", err)
	}

	return nil
}

// DecodeQuery decodes URL query parameters into out using `schema` tags.
func DecodeQuery(r *http.Request, out interface{}) error {
	err := r.ParseForm()
	if err != nil {
		return fmt.Errorf("failed parse form: %w", err)
	}

	err = queryDecoder.Decode(out, r.Form)
	if err != nil {
		return fmt.Errorf("failed decode query params: %w", err)
	}

	return nil
}
