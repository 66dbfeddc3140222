package workbookview

import "context"

// ViewState is the part of the page model the tests inspect.
type ViewState struct {
	WeekRanges   []string // "6 Jan 2025 – 12 Jan 2025" per week, as displayed
	FormsEnabled bool
}

// ViewState loads workbook id as the page would.
func (h *Handler) ViewState(ctx context.Context, id string) (ViewState, error) {
	data, _, err := h.viewModel(ctx, id)
	if err != nil {
		return ViewState{}, err
	}
	st := ViewState{FormsEnabled: data.FormsEnabled}
	for _, w := range data.Weeks {
		st.WeekRanges = append(st.WeekRanges, w.StartDate+" – "+w.EndDate)
	}
	return st, nil
}

// ValidateStored runs the persisted-workbook rules over workbook id.
func (h *Handler) ValidateStored(ctx context.Context, id string) ([]string, error) {
	p, err := h.load(ctx, id)
	if err != nil {
		return nil, err
	}
	acts, err := h.Backend.Activities(ctx, id, 0)
	if err != nil {
		return nil, err
	}
	return validatePersisted(p, acts), nil
}
