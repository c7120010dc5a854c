package restapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/satori/uuid"
	"github.com/segmentio/encoding/json"
	"github.com/yusufsyaifudin/appkeeper/pkg/logger"
	"github.com/yusufsyaifudin/appkeeper/pkg/respbuilder"
	"go.uber.org/multierr"
)

const requestTimeout = 30 * time.Second

func toSimpleMap(h http.Header) map[string]string {
	out := map[string]string{}
	for k, v := range h {
		out[k] = strings.Join(v, " ")
	}

	return out
}

// bodyData puts a JSON body in DataObject, anything else goes to DataString.
func bodyData(header http.Header, body []byte) (logger.HTTPData, error) {
	data := logger.HTTPData{
		Header: toSimpleMap(header),
	}

	if len(body) == 0 {
		return data, nil
	}

	var obj interface{}
	if err := json.Unmarshal(body, &obj); err != nil {
		data.DataString = string(body)
		if strings.Contains(header.Get("Content-Type"), "json") {
			return data, err
		}

		return data, nil
	}

	data.DataObject = obj
	return data, nil
}

func requestLogger(skipFunc func(r *http.Request) bool, next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if skipFunc(r) {
			next.ServeHTTP(w, r)
			return
		}

		var globalErr error
		t1 := time.Now().UTC()
		ctx := r.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()

		traceID := uuid.NewV4().String()

		// Inject logger and response tracer at same time
		ctx = logger.Inject(ctx, logger.Tracer{
			RemoteAddr: r.RemoteAddr,
			AppTraceID: traceID,
		})
		ctx = respbuilder.Inject(ctx, respbuilder.Tracer{
			RemoteAddr: r.RemoteAddr,
			AppTraceID: traceID,
		})
		r = r.WithContext(ctx)

		reqBody := make([]byte, 0)
		if r.Body != nil {
			var err error
			reqBody, err = io.ReadAll(r.Body)
			if err != nil {
				globalErr = multierr.Append(globalErr, fmt.Errorf("error read request body: %w", err))
				reqBody = []byte(``)
			}

			if _err := r.Body.Close(); _err != nil {
				globalErr = multierr.Append(globalErr, fmt.Errorf("cannot close request body: %w", _err))
			}

			r.Body = io.NopCloser(bytes.NewBuffer(reqBody))
		}

		reqData, err := bodyData(r.Header, reqBody)
		if err != nil {
			globalErr = multierr.Append(globalErr, fmt.Errorf("error unmarshal request body: %w", err))
		}

		// continue serve, and record the response
		rec := httptest.NewRecorder()
		next.ServeHTTP(rec, r)

		respBody := rec.Body.Bytes()
		respData, err := bodyData(rec.Header(), respBody)
		if err != nil {
			globalErr = multierr.Append(globalErr, fmt.Errorf("error unmarshal response body: %w", err))
		}

		// html pages are logged by size only
		if strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html") {
			respData.DataString = fmt.Sprintf("<%d bytes of html>", len(respBody))
		}

		for k, v := range rec.Header() {
			w.Header()[k] = v
		}

		w.WriteHeader(rec.Code)
		_, err = bytes.NewReader(respBody).WriteTo(w)
		if err != nil {
			globalErr = multierr.Append(globalErr, fmt.Errorf("error write response body: %w", err))
		}

		errStr := ""
		if globalErr != nil {
			errStr = globalErr.Error()
		}

		logger.Access(ctx, logger.AccessLogData{
			Method:      r.Method,
			Path:        r.RequestURI,
			StatusCode:  rec.Code,
			Request:     reqData,
			Response:    respData,
			Error:       errStr,
			ElapsedTime: time.Since(t1).Milliseconds(),
		})
	}
}
