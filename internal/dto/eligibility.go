package dto

// EligibilityRequest selects the batch (path) and, when editing an existing
// slot, the slot whose current module/faculty must stay visible.
type EligibilityRequest struct {
	SlotID string `form:"slot_id" binding:"omitempty,uuid"`
}

// EligibleModule is one module together with the faculty who may teach it for
// the requested batch.
type EligibleModule struct {
	Module  ModuleBrief    `json:"module"`
	Faculty []FacultyBrief `json:"faculty"`
	// Grandfathered marks a module kept visible only because the slot being
	// edited currently references it.
	Grandfathered bool `json:"grandfathered,omitempty"`
}

// EligibilityResponse is the resolver's result. It is a plain value: callers
// thread it through explicitly rather than reading shared lookup state.
type EligibilityResponse struct {
	BatchID string           `json:"batch_id"`
	Modules []EligibleModule `json:"modules"`
	// Degraded is true when an underlying fetch failed and the resolver fell
	// open to the unfiltered global lists.
	Degraded bool `json:"degraded"`
}
