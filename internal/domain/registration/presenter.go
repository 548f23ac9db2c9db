// internal/domain/registration/presenter.go
package registration

// FieldPresenter turns validation results into field states on a Presenter.
type FieldPresenter struct {
	surface Presenter
}

func NewFieldPresenter(surface Presenter) *FieldPresenter {
	return &FieldPresenter{surface: surface}
}

// Apply shows result on field. A valid blank optional field stays neutral.
func (p *FieldPresenter) Apply(field Field, value string, result FieldResult) {
	switch {
	case !result.Valid:
		p.surface.SetFieldState(field, StateError, result.Message)
	case value == "":
		p.surface.SetFieldState(field, StateNeutral, "")
	default:
		p.surface.SetFieldState(field, StateSuccess, "")
	}
}

// Clear drops any previous state while the user is typing.
func (p *FieldPresenter) Clear(field Field) {
	p.surface.SetFieldState(field, StateNeutral, "")
}
