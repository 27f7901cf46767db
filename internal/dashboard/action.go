package dashboard

import (
	"context"
	"fmt"

	"github.com/matheus3301/notilog/internal/logs"
)

// ActionKind identifies a user intent.
type ActionKind int

const (
	Reload ActionKind = iota
	SetQuery
	OpenForm
	SetDraft
	Submit
	CancelForm
	RequestDelete
	ConfirmDelete
	CancelDelete
	Export
	ToggleTheme
)

var actionNames = [...]string{
	Reload:        "reload",
	SetQuery:      "set_query",
	OpenForm:      "open_form",
	SetDraft:      "set_draft",
	Submit:        "submit",
	CancelForm:    "cancel_form",
	RequestDelete: "request_delete",
	ConfirmDelete: "confirm_delete",
	CancelDelete:  "cancel_delete",
	Export:        "export",
	ToggleTheme:   "toggle_theme",
}

func (k ActionKind) String() string {
	if int(k) < len(actionNames) {
		return actionNames[k]
	}
	return fmt.Sprintf("action(%d)", int(k))
}

// Action is one user intent. Only the fields relevant to Kind are read.
type Action struct {
	Kind    ActionKind
	Variant logs.Variant
	Query   string
	Draft   logs.Draft
	Target  logs.DeleteTarget
	Dir     string
}

// Dispatch routes an action to the matching operation.
func (d *Dashboard) Dispatch(ctx context.Context, a Action) error {
	switch a.Kind {
	case Reload:
		return d.LoadAll(ctx)
	case SetQuery:
		d.SetQuery(a.Variant, a.Query)
	case OpenForm:
		return d.OpenForm(a.Variant)
	case SetDraft:
		d.SetDraft(a.Variant, a.Draft)
	case Submit:
		return d.Submit(ctx, a.Variant)
	case CancelForm:
		d.CancelForm(a.Variant)
	case RequestDelete:
		return d.RequestDelete(a.Target)
	case ConfirmDelete:
		return d.ConfirmDelete(ctx)
	case CancelDelete:
		d.CancelDelete()
	case Export:
		_, err := d.Export(a.Variant, a.Dir)
		return err
	case ToggleTheme:
		_, err := d.ToggleTheme()
		return err
	default:
		return fmt.Errorf("unknown action %s", a.Kind)
	}
	return nil
}
