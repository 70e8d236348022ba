package service

import (
	"time"

	"github.com/shravyakp25082007-tech/stockmate/internal/model"
	"github.com/shravyakp25082007-tech/stockmate/internal/ws"
	"github.com/shravyakp25082007-tech/stockmate/pkg/validator"
)

// Notifier receives an event after every successful change. *ws.Hub
// implements it.
type Notifier interface {
	Publish(e ws.Event)
}

type nopNotifier struct{}

func (nopNotifier) Publish(ws.Event) {}

// NopNotifier discards events. Used by the CLI and tests.
var NopNotifier Notifier = nopNotifier{}

// Clock returns the current time. Injected so tests can pin dates.
type Clock func() time.Time

const eventStockUpdate = "stock_update"

// unsavedSuffix marks an event whose change is held in memory only.
const unsavedSuffix = " (save failed, kept in memory only)"

// eventMessage flags msg when the change could not be persisted.
func eventMessage(msg string, saveErr error) string {
	if saveErr != nil {
		return msg + unsavedSuffix
	}
	return msg
}

func validateStruct(v interface{}) error {
	errs := validator.ValidateStruct(v)
	if len(errs) == 0 {
		return nil
	}
	verr := &model.ValidationError{}
	for _, e := range errs {
		verr.Add(e.FailedField, e.Describe())
	}
	return verr
}
