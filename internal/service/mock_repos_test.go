package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"acadportal/backend/internal/model"
	"acadportal/backend/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	err   error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListActiveFaculty(_ context.Context) ([]model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.User
	for _, u := range m.users {
		if u.Role == model.RoleFaculty && u.IsActive {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// ── Mock ModuleRepository ──

type mockModuleRepo struct {
	modules map[string]*model.Module
	err     error
}

func newMockModuleRepo() *mockModuleRepo {
	return &mockModuleRepo{modules: make(map[string]*model.Module)}
}

func (m *mockModuleRepo) GetByID(_ context.Context, id string) (*model.Module, error) {
	if m.err != nil {
		return nil, m.err
	}
	if mod, ok := m.modules[id]; ok {
		return mod, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockModuleRepo) ListActiveByCourse(_ context.Context, courseID string) ([]model.Module, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.Module
	for _, mod := range m.modules {
		if mod.CourseID == courseID && mod.IsActive {
			result = append(result, *mod)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

func (m *mockModuleRepo) ListActive(_ context.Context) ([]model.Module, error) {
	var result []model.Module
	for _, mod := range m.modules {
		if mod.IsActive {
			result = append(result, *mod)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

// ── Mock BatchRepository ──

type mockBatchRepo struct {
	batches map[string]*model.Batch
	err     error
}

func newMockBatchRepo() *mockBatchRepo {
	return &mockBatchRepo{batches: make(map[string]*model.Batch)}
}

func (m *mockBatchRepo) GetByID(_ context.Context, id string) (*model.Batch, error) {
	if m.err != nil {
		return nil, m.err
	}
	if b, ok := m.batches[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBatchRepo) List(_ context.Context, courseID string, active *bool) ([]model.Batch, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.Batch
	for _, b := range m.batches {
		if courseID != "" && b.CourseID != courseID {
			continue
		}
		if active != nil && b.IsActive != *active {
			continue
		}
		result = append(result, *b)
	}
	return result, nil
}

// ── Mock FacultyBatchAssignmentRepository ──

type mockFacultyBatchRepo struct {
	assignments []model.FacultyBatchAssignment
	err         error
}

func newMockFacultyBatchRepo() *mockFacultyBatchRepo {
	return &mockFacultyBatchRepo{}
}

func (m *mockFacultyBatchRepo) ListActiveByBatch(_ context.Context, batchID string) ([]model.FacultyBatchAssignment, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.FacultyBatchAssignment
	for _, a := range m.assignments {
		if a.BatchID == batchID && a.IsActive {
			result = append(result, a)
		}
	}
	return result, nil
}

// ── Mock FacultyModuleAssignmentRepository ──

type mockFacultyModuleRepo struct {
	assignments []model.FacultyModuleAssignment
	err         error
}

func newMockFacultyModuleRepo() *mockFacultyModuleRepo {
	return &mockFacultyModuleRepo{}
}

func (m *mockFacultyModuleRepo) ListActiveByFaculty(_ context.Context, facultyID string) ([]model.FacultyModuleAssignment, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.FacultyModuleAssignment
	for _, a := range m.assignments {
		if a.FacultyID == facultyID && a.IsActive {
			result = append(result, a)
		}
	}
	return result, nil
}

// ── Mock EnrollmentRepository ──

type mockEnrollmentRepo struct {
	enrollments []model.Enrollment
	err         error
}

func newMockEnrollmentRepo() *mockEnrollmentRepo {
	return &mockEnrollmentRepo{}
}

func (m *mockEnrollmentRepo) ListActiveByBatch(_ context.Context, batchID string) ([]model.Enrollment, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.Enrollment
	for _, e := range m.enrollments {
		if e.BatchID == batchID && e.IsActive {
			result = append(result, e)
		}
	}
	return result, nil
}

// ── Mock TimeSlotRepository ──

type mockTimeSlotRepo struct {
	slots map[string]*model.TimeSlot
	seq   int
	err   error
}

func newMockTimeSlotRepo() *mockTimeSlotRepo {
	return &mockTimeSlotRepo{slots: make(map[string]*model.TimeSlot)}
}

func (m *mockTimeSlotRepo) Create(_ context.Context, slot *model.TimeSlot) error {
	if m.err != nil {
		return m.err
	}
	if slot.TimeSlotID == "" {
		m.seq++
		slot.TimeSlotID = fmt.Sprintf("slot-%03d", m.seq)
	}
	m.slots[slot.TimeSlotID] = slot
	return nil
}

func (m *mockTimeSlotRepo) GetByID(_ context.Context, id string) (*model.TimeSlot, error) {
	if m.err != nil {
		return nil, m.err
	}
	if s, ok := m.slots[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimeSlotRepo) List(_ context.Context, batchID, facultyID string, dayOfWeek *int) ([]model.TimeSlot, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.TimeSlot
	for _, s := range m.slots {
		if batchID != "" && s.BatchID != batchID {
			continue
		}
		if facultyID != "" && s.FacultyID != facultyID {
			continue
		}
		if dayOfWeek != nil && s.DayOfWeek != *dayOfWeek {
			continue
		}
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockTimeSlotRepo) ListActiveByFacultyAndDay(_ context.Context, facultyID string, dayOfWeek int) ([]model.TimeSlot, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.TimeSlot
	for _, s := range m.slots {
		if s.FacultyID == facultyID && s.DayOfWeek == dayOfWeek && s.IsActive {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockTimeSlotRepo) ListActiveByBatchAndDay(_ context.Context, batchID string, dayOfWeek int) ([]model.TimeSlot, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.TimeSlot
	for _, s := range m.slots {
		if s.BatchID == batchID && s.DayOfWeek == dayOfWeek && s.IsActive {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockTimeSlotRepo) ListActiveForScope(_ context.Context, batchID, facultyID string) ([]model.TimeSlot, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.TimeSlot
	for _, s := range m.slots {
		if !s.IsActive {
			continue
		}
		if batchID != "" && s.BatchID != batchID {
			continue
		}
		if facultyID != "" && s.FacultyID != facultyID {
			continue
		}
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TimeSlotID < result[j].TimeSlotID })
	return result, nil
}

func (m *mockTimeSlotRepo) Update(_ context.Context, slot *model.TimeSlot) error {
	if m.err != nil {
		return m.err
	}
	m.slots[slot.TimeSlotID] = slot
	return nil
}

func (m *mockTimeSlotRepo) Delete(_ context.Context, id string, _ string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.slots, id)
	return nil
}

// ── Mock SessionRepository ──

type mockSessionRepo struct {
	sessions  map[string]*model.ClassSession
	seq       int
	err       error
	createErr error
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]*model.ClassSession)}
}

func (m *mockSessionRepo) BatchCreate(_ context.Context, sessions []model.ClassSession) error {
	if m.createErr != nil {
		return m.createErr
	}
	for i := range sessions {
		s := sessions[i]
		if s.SessionID == "" {
			m.seq++
			s.SessionID = fmt.Sprintf("sess-%03d", m.seq)
			sessions[i].SessionID = s.SessionID
		}
		m.sessions[s.SessionID] = &s
	}
	return nil
}

func (m *mockSessionRepo) GetByID(_ context.Context, id string) (*model.ClassSession, error) {
	if m.err != nil {
		return nil, m.err
	}
	if s, ok := m.sessions[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) List(_ context.Context, filter repository.SessionFilter) ([]model.ClassSession, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.ClassSession
	for _, s := range m.sessions {
		if filter.BatchID != "" && (s.TimeSlot == nil || s.TimeSlot.BatchID != filter.BatchID) {
			continue
		}
		if filter.FacultyID != "" && (s.TimeSlot == nil || s.TimeSlot.FacultyID != filter.FacultyID) {
			continue
		}
		if filter.DateFrom != nil && s.SessionDate.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && s.SessionDate.After(*filter.DateTo) {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].SessionDate.Equal(result[j].SessionDate) {
			return result[i].SessionDate.Before(result[j].SessionDate)
		}
		return result[i].ScheduledStart < result[j].ScheduledStart
	})
	return result, nil
}

func (m *mockSessionRepo) ListDatesBySlot(_ context.Context, slotID string, from, to time.Time) ([]time.Time, error) {
	if m.err != nil {
		return nil, m.err
	}
	var dates []time.Time
	for _, s := range m.sessions {
		if s.TimeSlotID != slotID {
			continue
		}
		if s.SessionDate.Before(from) || s.SessionDate.After(to) {
			continue
		}
		dates = append(dates, s.SessionDate)
	}
	return dates, nil
}

func (m *mockSessionRepo) CountByTimeSlot(_ context.Context, slotID string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	var count int64
	for _, s := range m.sessions {
		if s.TimeSlotID == slotID {
			count++
		}
	}
	return count, nil
}

func (m *mockSessionRepo) Update(_ context.Context, session *model.ClassSession) error {
	if m.err != nil {
		return m.err
	}
	copied := *session
	m.sessions[session.SessionID] = &copied
	return nil
}

func (m *mockSessionRepo) Delete(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.sessions, id)
	return nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	// records keyed by sessionID then studentID
	records  map[string]map[string]*model.AttendanceRecord
	sessions *mockSessionRepo
	saveErr  error
}

func newMockAttendanceRepo(sessions *mockSessionRepo) *mockAttendanceRepo {
	return &mockAttendanceRepo{
		records:  make(map[string]map[string]*model.AttendanceRecord),
		sessions: sessions,
	}
}

func (m *mockAttendanceRepo) ListBySession(_ context.Context, sessionID string) ([]model.AttendanceRecord, error) {
	var result []model.AttendanceRecord
	for _, r := range m.records[sessionID] {
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StudentID < result[j].StudentID })
	return result, nil
}

func (m *mockAttendanceRepo) SaveWithSession(_ context.Context, session *model.ClassSession, records []model.AttendanceRecord) (int, int, error) {
	if m.saveErr != nil {
		return 0, 0, m.saveErr
	}

	var created, updated int
	for i := range records {
		rec := records[i]
		bySession, ok := m.records[rec.SessionID]
		if !ok {
			bySession = make(map[string]*model.AttendanceRecord)
			m.records[rec.SessionID] = bySession
		}
		if existing, ok := bySession[rec.StudentID]; ok {
			existing.Status = rec.Status
			existing.MarkedBy = rec.MarkedBy
			updated++
		} else {
			bySession[rec.StudentID] = &rec
			created++
		}
	}

	copied := *session
	m.sessions.sessions[session.SessionID] = &copied
	return created, updated, nil
}

// ── shared fixture ──

// testEnv bundles the mocks behind a repository aggregate.
type testEnv struct {
	repo          *repository.Repository
	users         *mockUserRepo
	modules       *mockModuleRepo
	batches       *mockBatchRepo
	facultyBatch  *mockFacultyBatchRepo
	facultyModule *mockFacultyModuleRepo
	enrollments   *mockEnrollmentRepo
	timeSlots     *mockTimeSlotRepo
	sessions      *mockSessionRepo
	attendance    *mockAttendanceRepo
}

func newTestEnv() *testEnv {
	env := &testEnv{
		users:         newMockUserRepo(),
		modules:       newMockModuleRepo(),
		batches:       newMockBatchRepo(),
		facultyBatch:  newMockFacultyBatchRepo(),
		facultyModule: newMockFacultyModuleRepo(),
		enrollments:   newMockEnrollmentRepo(),
		timeSlots:     newMockTimeSlotRepo(),
		sessions:      newMockSessionRepo(),
	}
	env.attendance = newMockAttendanceRepo(env.sessions)
	env.repo = &repository.Repository{
		User:          env.users,
		Module:        env.modules,
		Batch:         env.batches,
		FacultyBatch:  env.facultyBatch,
		FacultyModule: env.facultyModule,
		Enrollment:    env.enrollments,
		TimeSlot:      env.timeSlots,
		Session:       env.sessions,
		Attendance:    env.attendance,
	}
	return env
}

// seedSchedulingFixture loads a batch with one eligible faculty/module pair
// and an enrolled student, the baseline most scheduling tests start from.
func (env *testEnv) seedSchedulingFixture() {
	env.users.users["fac-1"] = &model.User{
		UserID: "fac-1", Name: "Dana Faculty", Email: "dana@example.edu",
		Role: model.RoleFaculty, IsActive: true,
	}
	env.users.users["stu-1"] = &model.User{
		UserID: "stu-1", Name: "Sam Student", Email: "sam@example.edu",
		Role: model.RoleStudent, IsActive: true,
	}
	env.modules.modules["mod-1"] = &model.Module{
		ModuleID: "mod-1", CourseID: "course-1", Name: "Algorithms", Code: "CS201", IsActive: true,
	}
	env.batches.batches["batch-1"] = &model.Batch{
		BatchID: "batch-1", CourseID: "course-1", Name: "Fall Cohort",
		StartDate: mustDate("2026-01-05"), IsActive: true,
	}
	env.facultyBatch.assignments = append(env.facultyBatch.assignments, model.FacultyBatchAssignment{
		AssignmentID: "fba-1", FacultyID: "fac-1", BatchID: "batch-1", IsActive: true,
		Faculty: env.users.users["fac-1"],
	})
	env.facultyModule.assignments = append(env.facultyModule.assignments, model.FacultyModuleAssignment{
		AssignmentID: "fma-1", FacultyID: "fac-1", ModuleID: "mod-1", IsActive: true,
	})
	env.enrollments.enrollments = append(env.enrollments.enrollments, model.Enrollment{
		EnrollmentID: "enr-1", BatchID: "batch-1", StudentID: "stu-1", IsActive: true,
		Student: env.users.users["stu-1"],
	})
}

func (env *testEnv) addSlot(id, facultyID, batchID, moduleID string, day int, start, end string) *model.TimeSlot {
	slot := &model.TimeSlot{
		TimeSlotID: id,
		BatchID:    batchID,
		ModuleID:   moduleID,
		FacultyID:  facultyID,
		DayOfWeek:  day,
		StartTime:  start,
		EndTime:    end,
		IsActive:   true,
		Batch:      env.batches.batches[batchID],
		Module:     env.modules.modules[moduleID],
		Faculty:    env.users.users[facultyID],
	}
	env.timeSlots.slots[id] = slot
	return slot
}

func mustDate(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}
