package dashboard

import (
	"context"

	"go.uber.org/zap"

	"github.com/matheus3301/notilog/internal/api"
	"github.com/matheus3301/notilog/internal/logs"
	"github.com/matheus3301/notilog/internal/modal"
)

// RequestDelete remembers target and opens the confirm dialog. It returns
// modal.ErrInFlight while a previous delete is still running.
func (d *Dashboard) RequestDelete(target logs.DeleteTarget) error {
	if d.confirm.Current() == modal.InFlight {
		return modal.ErrInFlight
	}
	d.mu.Lock()
	d.pending = &target
	d.mu.Unlock()
	d.confirm.Show()
	return nil
}

// Pending returns the record awaiting confirmation, if any.
func (d *Dashboard) Pending() (logs.DeleteTarget, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.pending == nil {
		return logs.DeleteTarget{}, false
	}
	return *d.pending, true
}

// ConfirmState returns the modal state of the confirm dialog.
func (d *Dashboard) ConfirmState() modal.State {
	return d.confirm.Current()
}

// ConfirmDelete deletes the pending record. Without a pending record it
// does nothing. On failure the dialog stays open and the selection is kept
// so the user can retry.
func (d *Dashboard) ConfirmDelete(ctx context.Context) error {
	target, ok := d.Pending()
	if !ok {
		return nil
	}
	d.confirm.Show()
	if err := d.confirm.Begin(); err != nil {
		return err
	}

	n, err := d.client.Delete(ctx, target.Variant, target.ID)
	if err != nil {
		d.confirm.Finish(false)
		d.log.Warn("delete failed",
			zap.String("variant", string(target.Variant)),
			zap.Int64("id", target.ID),
			zap.Error(err),
		)
		d.notifyError(api.UserMessage(err, MsgDeleteFailed))
		return err
	}

	d.confirm.Finish(true)
	d.mu.Lock()
	d.pending = nil
	d.mu.Unlock()
	d.log.Info("deleted",
		zap.String("variant", string(target.Variant)),
		zap.Int64("id", target.ID),
		zap.Int("rows", n),
	)

	_ = d.LoadAll(ctx)
	d.notifySuccess(MsgDeleted)
	return nil
}

// CancelDelete closes the confirm dialog and forgets the selection. It has
// no effect while the delete request is in flight.
func (d *Dashboard) CancelDelete() {
	if !d.confirm.Hide() {
		return
	}
	d.mu.Lock()
	d.pending = nil
	d.mu.Unlock()
}
