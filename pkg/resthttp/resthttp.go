package resthttp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fox-one/pkg/logger"
	"github.com/go-resty/resty/v2"
)

var runOnce sync.Once
var restyClient *resty.Client

// Client resty client
func Client() *resty.Client {
	runOnce.Do(func() {
		restyClient = resty.New().
			SetHeader("Content-Type", "application/json").
			SetHeader("Charset", "utf-8").
			SetTimeout(10 * time.Second)
	})

	return restyClient
}

// Request new resty request
func Request(ctx context.Context) *resty.Request {
	return Client().R().SetContext(ctx)
}

// Execute do network request
func Execute(request *resty.Request, method, url string, body interface{}, resp interface{}) (int, error) {
	log := logger.FromContext(request.Context()).WithField("url", url)

	if body != nil {
		request = request.SetBody(body)
	}

	r, err := request.Execute(strings.ToUpper(method), url)
	if err != nil {
		log.WithError(err).Debugln("request failed")
		if r == nil {
			return 0, err
		}
		return r.StatusCode(), err
	}

	log.Debugln("resp.status:", r.Status())

	return r.StatusCode(), ParseResponse(r, resp)
}

// ParseResponse parse response
func ParseResponse(r *resty.Response, obj interface{}) error {
	//fail
	if !r.IsSuccess() {
		return fmt.Errorf("%s: %s", r.Status(), string(r.Body()))
	}

	//success
	if obj != nil {
		return json.Unmarshal(r.Body(), obj)
	}
	return nil
}
