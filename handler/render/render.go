package render

import (
	"encoding/json"
	"net/http"

	"moneymarket/handler/codes"

	"github.com/sirupsen/logrus"
	"github.com/twitchtv/twirp"
)

type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	enc := json.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		logrus.Errorln(err)
	}
}

// Text render with text
func Text(w http.ResponseWriter, t string) {
	w.Header().Set("Content-Type", "application/text")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(t)); err != nil {
		logrus.Errorln(err)
	}
}

// Error write err as a twirp style error body, the status follows the
// twirp code err maps to
func Error(w http.ResponseWriter, err error) {
	twerr := codes.Twirp(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(twirp.ServerHTTPStatusFromErrorCode(twerr.Code()))

	resp := errorResponse{
		Code: codes.Get(twerr),
		Msg:  twerr.Msg(),
	}
	if ResponseErrorMessageAsHint || twerr.Code() != twirp.Internal {
		resp.Hint = twerr.Meta(codes.HintKey)
	}

	enc := json.NewEncoder(w)
	if err := enc.Encode(resp); err != nil {
		logrus.Errorln(err)
	}
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	Error(w, twirp.InvalidArgumentError("request", err.Error()))
}

// NotFoundRequest not found request error
func NotFoundRequest(w http.ResponseWriter, err error) {
	Error(w, twirp.NotFoundError(err.Error()))
}
