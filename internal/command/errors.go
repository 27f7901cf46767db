package command

import (
	"errors"

	"github.com/matheus3301/notilog/internal/api"
)

// userError converts err into the message shown on stderr. Server-provided
// messages win over fallback.
func userError(err error, fallback string) error {
	return errors.New(api.UserMessage(err, fallback))
}
