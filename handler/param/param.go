package param

import (
	"encoding/json"
	"net/http"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi"
	"github.com/gorilla/schema"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
	decoder.SetAliasTag("json")
}

// Binding decode the request into v: url params and the query for every
// method, the json body for POST and PUT. Then validate v.
func Binding(r *http.Request, v interface{}) error {
	if r.Method == http.MethodPost || r.Method == http.MethodPut {
		if err := json.NewDecoder(r.Body).Decode(v); err != nil {
			return err
		}
	} else if err := decoder.Decode(v, r.URL.Query()); err != nil {
		return err
	}

	if c := chi.RouteContext(r.Context()); c != nil {
		values := map[string][]string{}
		for idx, key := range c.URLParams.Keys {
			values[key] = []string{c.URLParams.Values[idx]}
		}

		if len(values) > 0 {
			if err := decoder.Decode(v, values); err != nil {
				return err
			}
		}
	}

	_, err := govalidator.ValidateStruct(v)
	return err
}
