package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"acadportal/backend/internal/dto"
	"acadportal/backend/internal/repository"
)

var (
	ErrBatchNotFound = errors.New("batch not found")
)

// EligibilityService computes which modules may be scheduled for a batch and
// which faculty may teach each of them. The result is a plain value the
// caller threads through explicitly; nothing here is cached or shared.
type EligibilityService interface {
	// Resolve narrows the course's modules to those with at least one
	// faculty who is both assigned to the batch and qualified for the
	// module. editSlotID, when set, keeps the slot's current module/faculty
	// selectable even if assignments have changed since it was created.
	Resolve(ctx context.Context, batchID, editSlotID string) (*dto.EligibilityResponse, error)
}

type eligibilityService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEligibilityService creates an EligibilityService instance.
func NewEligibilityService(repo *repository.Repository, logger *zap.Logger) EligibilityService {
	return &eligibilityService{repo: repo, logger: logger}
}

func (s *eligibilityService) Resolve(ctx context.Context, batchID, editSlotID string) (*dto.EligibilityResponse, error) {
	batch, err := s.repo.Batch.GetByID(ctx, batchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBatchNotFound
		}
		s.logger.Warn("batch fetch failed, eligibility failing open", zap.Error(err))
		return s.failOpen(ctx, batchID)
	}

	modules, err := s.repo.Module.ListActiveByCourse(ctx, batch.CourseID)
	if err != nil {
		s.logger.Warn("module catalog fetch failed, eligibility failing open", zap.Error(err))
		return s.failOpen(ctx, batchID)
	}

	batchAssignments, err := s.repo.FacultyBatch.ListActiveByBatch(ctx, batchID)
	if err != nil {
		s.logger.Warn("batch assignment fetch failed, eligibility failing open", zap.Error(err))
		return s.failOpen(ctx, batchID)
	}

	// faculty eligible for the batch, with display names
	facultyNames := make(map[string]string, len(batchAssignments))
	for _, a := range batchAssignments {
		name := a.FacultyID
		if a.Faculty != nil {
			name = a.Faculty.Name
		}
		facultyNames[a.FacultyID] = name
	}

	// module → faculty subset, restricted to batch-eligible faculty
	moduleFaculty := make(map[string][]dto.FacultyBrief)
	for facultyID, name := range facultyNames {
		moduleAssignments, err := s.repo.FacultyModule.ListActiveByFaculty(ctx, facultyID)
		if err != nil {
			s.logger.Warn("module assignment fetch failed, eligibility failing open",
				zap.String("faculty_id", facultyID), zap.Error(err))
			return s.failOpen(ctx, batchID)
		}
		for _, ma := range moduleAssignments {
			moduleFaculty[ma.ModuleID] = append(moduleFaculty[ma.ModuleID], dto.FacultyBrief{
				ID:   facultyID,
				Name: name,
			})
		}
	}

	resp := &dto.EligibilityResponse{BatchID: batchID, Modules: []dto.EligibleModule{}}
	for i := range modules {
		m := &modules[i]
		faculty := moduleFaculty[m.ModuleID]
		if len(faculty) == 0 {
			continue // no qualified faculty available to this batch
		}
		resp.Modules = append(resp.Modules, dto.EligibleModule{
			Module:  dto.ModuleBrief{ID: m.ModuleID, Name: m.Name, Code: m.Code},
			Faculty: faculty,
		})
	}

	if editSlotID != "" {
		if err := s.includeCurrentSelection(ctx, editSlotID, resp); err != nil {
			s.logger.Warn("edit slot fetch failed, eligibility failing open", zap.Error(err))
			return s.failOpen(ctx, batchID)
		}
	}

	return resp, nil
}

// includeCurrentSelection makes sure the edited slot's module and faculty are
// present in the candidate lists even when the eligibility computation no
// longer produces them. Existing records are grandfathered into view.
func (s *eligibilityService) includeCurrentSelection(ctx context.Context, slotID string, resp *dto.EligibilityResponse) error {
	slot, err := s.repo.TimeSlot.GetByID(ctx, slotID)
	if err != nil {
		return err
	}

	facultyName := slot.FacultyID
	if slot.Faculty != nil {
		facultyName = slot.Faculty.Name
	}

	for i := range resp.Modules {
		em := &resp.Modules[i]
		if em.Module.ID != slot.ModuleID {
			continue
		}
		for _, f := range em.Faculty {
			if f.ID == slot.FacultyID {
				return nil // both still eligible
			}
		}
		em.Faculty = append(em.Faculty, dto.FacultyBrief{ID: slot.FacultyID, Name: facultyName})
		return nil
	}

	// the slot's module dropped out of the eligible set entirely
	em := dto.EligibleModule{
		Faculty:       []dto.FacultyBrief{{ID: slot.FacultyID, Name: facultyName}},
		Grandfathered: true,
	}
	if slot.Module != nil {
		em.Module = dto.ModuleBrief{ID: slot.ModuleID, Name: slot.Module.Name, Code: slot.Module.Code}
	} else {
		em.Module = dto.ModuleBrief{ID: slot.ModuleID}
	}
	resp.Modules = append(resp.Modules, em)
	return nil
}

// failOpen returns the unfiltered global module and faculty lists, with
// Degraded set so the caller knows which list it got.
func (s *eligibilityService) failOpen(ctx context.Context, batchID string) (*dto.EligibilityResponse, error) {
	modules, err := s.repo.Module.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	faculty, err := s.repo.User.ListActiveFaculty(ctx)
	if err != nil {
		return nil, err
	}

	briefs := make([]dto.FacultyBrief, 0, len(faculty))
	for _, f := range faculty {
		briefs = append(briefs, dto.FacultyBrief{ID: f.UserID, Name: f.Name})
	}

	resp := &dto.EligibilityResponse{BatchID: batchID, Degraded: true, Modules: []dto.EligibleModule{}}
	for i := range modules {
		m := &modules[i]
		resp.Modules = append(resp.Modules, dto.EligibleModule{
			Module:  dto.ModuleBrief{ID: m.ModuleID, Name: m.Name, Code: m.Code},
			Faculty: briefs,
		})
	}
	return resp, nil
}

// eligible reports whether the (module, faculty) pair appears in a resolved
// response. A degraded response accepts any pair it lists.
func eligible(resp *dto.EligibilityResponse, moduleID, facultyID string) bool {
	for i := range resp.Modules {
		if resp.Modules[i].Module.ID != moduleID {
			continue
		}
		for _, f := range resp.Modules[i].Faculty {
			if f.ID == facultyID {
				return true
			}
		}
	}
	return false
}
