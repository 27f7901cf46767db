package dashboard

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/matheus3301/notilog/internal/api"
	"github.com/matheus3301/notilog/internal/logs"
	"github.com/matheus3301/notilog/internal/modal"
)

// SavedText is the success notification for a created record.
func SavedText(v logs.Variant) string {
	return v.Label() + " log saved."
}

// SaveFailedText is the failure notification used when the server gives no
// message of its own.
func SaveFailedText(v logs.Variant) string {
	if v == logs.Email {
		return "Failed to save email."
	}
	return "Failed to save " + v.Label() + "."
}

func (d *Dashboard) form(v logs.Variant) (*modal.Machine, error) {
	m, ok := d.forms[v]
	if !ok {
		return nil, fmt.Errorf("%w %q", logs.ErrUnknownVariant, v)
	}
	return m, nil
}

// OpenForm shows the creation form for v.
func (d *Dashboard) OpenForm(v logs.Variant) error {
	m, err := d.form(v)
	if err != nil {
		return err
	}
	m.Show()
	return nil
}

// CancelForm hides the creation form. The draft is kept, and a form whose
// request is in flight stays open.
func (d *Dashboard) CancelForm(v logs.Variant) {
	if m, err := d.form(v); err == nil {
		m.Hide()
	}
}

// FormState returns the modal state of v's form.
func (d *Dashboard) FormState(v logs.Variant) modal.State {
	m, err := d.form(v)
	if err != nil {
		return modal.Closed
	}
	return m.Current()
}

// SetDraft replaces the contents of v's form.
func (d *Dashboard) SetDraft(v logs.Variant, draft logs.Draft) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.drafts[v] = draft
}

// Draft returns the contents of v's form.
func (d *Dashboard) Draft(v logs.Variant) logs.Draft {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.drafts[v]
}

// Submit posts v's draft. On success the draft is cleared, the form
// closes, everything is reloaded and a success notification follows. On
// failure the form stays open with the draft intact. A second submit while
// the first is running returns modal.ErrInFlight without sending anything.
func (d *Dashboard) Submit(ctx context.Context, v logs.Variant) error {
	m, err := d.form(v)
	if err != nil {
		return err
	}
	m.Show()
	if err := m.Begin(); err != nil {
		d.log.Debug("submit rejected", zap.String("variant", string(v)), zap.Error(err))
		return err
	}

	draft := d.Draft(v)
	if err := d.client.Create(ctx, v, draft); err != nil {
		m.Finish(false)
		d.log.Warn("create failed", zap.String("variant", string(v)), zap.Error(err))
		d.notifyError(api.UserMessage(err, SaveFailedText(v)))
		return err
	}

	d.mu.Lock()
	delete(d.drafts, v)
	d.mu.Unlock()
	m.Finish(true)

	_ = d.LoadAll(ctx)
	d.notifySuccess(SavedText(v))
	return nil
}
