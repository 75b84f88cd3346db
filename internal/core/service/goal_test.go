package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	. "goalsapp/pkg/test"

	"goalsapp/internal/adapter/database"
	"goalsapp/internal/adapter/database/repository"
	"goalsapp/internal/adapter/http/validation"
	"goalsapp/internal/core/domain"
	. "goalsapp/internal/core/model/request"
	"goalsapp/internal/core/port"
	"goalsapp/internal/core/service"
)

var ctx = context.Background()

type recordedOperation struct {
	entity    string
	operation string
	err       error
}

type spyRecorder struct {
	operations []recordedOperation
}

func (r *spyRecorder) RecordOperation(ctx context.Context, entity string, operation string, duration time.Duration, err error) {
	r.operations = append(r.operations, recordedOperation{entity: entity, operation: operation, err: err})
}

type GoalServiceTestSuite struct {
	suite.Suite
	DB       *database.DB
	Service  *service.GoalService
	GoalRepo port.GoalRepository
	Recorder *spyRecorder
}

func (s *GoalServiceTestSuite) SetupTest() {
	s.DB = InitTestDB()
	s.GoalRepo = repository.NewGoalRepository(s.DB, nil)
	s.Recorder = &spyRecorder{}

	s.Service = service.NewGoalService(s.GoalRepo, validation.NewValidator(), s.Recorder)
}

func (s *GoalServiceTestSuite) TearDownTest() {
	s.DB.Close()
}

func TestGoalServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(GoalServiceTestSuite))
}

func (s *GoalServiceTestSuite) TestCreate_Success() {
	goal, err := s.Service.Create(ctx, GoalRequest{
		Name:           Some("Run a marathon"),
		StartDate:      Some[DateText]("2025-03-01"),
		PlannedEndDate: Some[DateText]("2025-10-12T08:00:00Z"),
	})

	Expect(err).To(BeNil())
	Expect(goal.ID).To(BeNumerically(">", 0))
	Expect(goal.Name).To(Equal("Run a marathon"))
	Expect(goal.StartDate.String()).To(Equal("2025-03-01"))
	Expect(goal.PlannedEndDate.String()).To(Equal("2025-10-12"))
	Expect(goal.CreatedAt.IsZero()).To(BeFalse())
}

func (s *GoalServiceTestSuite) TestCreate_EmptyDatesAreNull() {
	goal, err := s.Service.Create(ctx, GoalRequest{
		Name:      Some("Read more"),
		StartDate: Some[DateText](""),
	})

	Expect(err).To(BeNil())
	Expect(goal.StartDate).To(BeNil())
	Expect(goal.PlannedEndDate).To(BeNil())
}

func (s *GoalServiceTestSuite) TestCreate_RequiresName() {
	for _, req := range []GoalRequest{{}, {Name: Null[string]()}, {Name: Some("")}} {
		_, err := s.Service.Create(ctx, req)

		Expect(domain.IsValidation(err)).To(BeTrue())
		Expect(err.Error()).To(Equal("goal name is required"))
	}

	goals, _ := s.Service.List(ctx)
	Expect(goals).To(BeEmpty())
}

func (s *GoalServiceTestSuite) TestCreate_RejectsBadDate() {
	_, err := s.Service.Create(ctx, GoalRequest{
		Name:      Some("Bad"),
		StartDate: Some[DateText]("01/02/2025"),
	})

	Expect(err).To(MatchError(domain.ErrDateFormat))
}

func (s *GoalServiceTestSuite) TestCreate_RejectsLongName() {
	long := make([]byte, 256)
	for i := range long {
		long[i] = 'a'
	}

	_, err := s.Service.Create(ctx, GoalRequest{Name: Some(string(long))})

	Expect(domain.IsValidation(err)).To(BeTrue())
}

func (s *GoalServiceTestSuite) TestList_NewestFirst() {
	s.Service.Create(ctx, GoalRequest{Name: Some("older")})
	s.Service.Create(ctx, GoalRequest{Name: Some("newer")})

	goals, err := s.Service.List(ctx)

	Expect(err).To(BeNil())
	Expect(goals).To(HaveLen(2))
	Expect(goals[0].Name).To(Equal("newer"))
	Expect(goals[1].Name).To(Equal("older"))
}

func (s *GoalServiceTestSuite) TestGet_NotFound() {
	_, err := s.Service.Get(ctx, 404)

	Expect(err).To(MatchError(domain.ErrGoalNotFound))
}

func (s *GoalServiceTestSuite) TestUpdate_PartialKeepsOtherFields() {
	created, _ := s.Service.Create(ctx, GoalRequest{
		Name:           Some("Initial"),
		StartDate:      Some[DateText]("2025-01-01"),
		PlannedEndDate: Some[DateText]("2025-12-31"),
	})

	updated, err := s.Service.Update(ctx, created.ID, GoalRequest{Name: Some("Renamed")})

	Expect(err).To(BeNil())
	Expect(updated.Name).To(Equal("Renamed"))
	Expect(updated.StartDate.String()).To(Equal("2025-01-01"))
	Expect(updated.PlannedEndDate.String()).To(Equal("2025-12-31"))
}

func (s *GoalServiceTestSuite) TestUpdate_ClearsDates() {
	created, _ := s.Service.Create(ctx, GoalRequest{
		Name:           Some("Dated"),
		StartDate:      Some[DateText]("2025-01-01"),
		PlannedEndDate: Some[DateText]("2025-12-31"),
	})

	updated, err := s.Service.Update(ctx, created.ID, GoalRequest{
		StartDate:      Null[DateText](),
		PlannedEndDate: Some[DateText](""),
	})

	Expect(err).To(BeNil())
	Expect(updated.Name).To(Equal("Dated"))
	Expect(updated.StartDate).To(BeNil())
	Expect(updated.PlannedEndDate).To(BeNil())
}

func (s *GoalServiceTestSuite) TestUpdate_NoFields() {
	created, _ := s.Service.Create(ctx, GoalRequest{Name: Some("Untouched")})

	_, err := s.Service.Update(ctx, created.ID, GoalRequest{})

	Expect(err).To(Equal(domain.ErrNoGoalFields))
}

func (s *GoalServiceTestSuite) TestUpdate_EmptyName() {
	created, _ := s.Service.Create(ctx, GoalRequest{Name: Some("Named")})

	_, err := s.Service.Update(ctx, created.ID, GoalRequest{Name: Some("")})

	Expect(domain.IsValidation(err)).To(BeTrue())
	Expect(err.Error()).To(Equal("goal name cannot be empty"))

	reread, _ := s.Service.Get(ctx, created.ID)
	Expect(reread.Name).To(Equal("Named"))
}

func (s *GoalServiceTestSuite) TestUpdate_Missing() {
	_, err := s.Service.Update(ctx, 77, GoalRequest{Name: Some("ghost")})

	Expect(err).To(MatchError(domain.ErrGoalNotFound))
}

func (s *GoalServiceTestSuite) TestUpdate_SameValuesReturnsCurrentRow() {
	created, _ := s.Service.Create(ctx, GoalRequest{Name: Some("Stable")})

	updated, err := s.Service.Update(ctx, created.ID, GoalRequest{Name: Some("Stable")})

	Expect(err).To(BeNil())
	Expect(updated.ID).To(Equal(created.ID))
	Expect(updated.UpdatedAt).To(BeTemporally("==", created.UpdatedAt))
}

func (s *GoalServiceTestSuite) TestDelete() {
	created, _ := s.Service.Create(ctx, GoalRequest{Name: Some("Temporary")})

	Expect(s.Service.Delete(ctx, created.ID)).To(Succeed())
	Expect(s.Service.Delete(ctx, created.ID)).To(MatchError(domain.ErrGoalNotFound))

	_, err := s.Service.Get(ctx, created.ID)
	Expect(err).To(MatchError(domain.ErrGoalNotFound))
}

func (s *GoalServiceTestSuite) TestRecordsOperations() {
	s.Service.Create(ctx, GoalRequest{Name: Some("Measured")})
	s.Service.Get(ctx, 999)

	require.Len(s.T(), s.Recorder.operations, 2)

	assert.Equal(s.T(), "goal", s.Recorder.operations[0].entity)
	assert.Equal(s.T(), "create", s.Recorder.operations[0].operation)
	assert.NoError(s.T(), s.Recorder.operations[0].err)

	assert.Equal(s.T(), "get", s.Recorder.operations[1].operation)
	assert.ErrorIs(s.T(), s.Recorder.operations[1].err, domain.ErrGoalNotFound)
}

// goalRepoStub lets the update paths observe a row that vanishes between the
// read and the write.
type goalRepoStub struct {
	port.GoalRepository
	goal     domain.Goal
	affected int64
	reads    int
	readErr  error
}

func (r *goalRepoStub) GetByID(ctx context.Context, id int64) (domain.Goal, error) {
	r.reads++

	if r.reads > 1 && r.readErr != nil {
		return domain.Goal{}, r.readErr
	}

	return r.goal, nil
}

func (r *goalRepoStub) Exists(ctx context.Context, id int64) (bool, error) {
	return true, nil
}

func (r *goalRepoStub) Update(ctx context.Context, goal domain.Goal) (int64, error) {
	return r.affected, nil
}

func (r *goalRepoStub) Create(ctx context.Context, goal domain.Goal) (int64, error) {
	return 1, nil
}

func TestGoalService_UpdateRowDeletedConcurrently(t *testing.T) {
	RegisterTestingT(t)

	repo := &goalRepoStub{goal: domain.Goal{ID: 1, Name: "Original"}, affected: 0}
	gs := service.NewGoalService(repo, validation.NewValidator(), nil)

	_, err := gs.Update(ctx, 1, GoalRequest{Name: Some("Changed")})

	Expect(err).To(MatchError(domain.ErrGoalNotFound))
	Expect(repo.reads).To(Equal(1))
}

func TestGoalService_UpdateUnchangedReadsBack(t *testing.T) {
	RegisterTestingT(t)

	repo := &goalRepoStub{goal: domain.Goal{ID: 1, Name: "Original"}, affected: 0}
	gs := service.NewGoalService(repo, validation.NewValidator(), nil)

	goal, err := gs.Update(ctx, 1, GoalRequest{Name: Some("Original")})

	Expect(err).To(BeNil())
	Expect(goal.Name).To(Equal("Original"))
	Expect(repo.reads).To(Equal(2))
}

func TestGoalService_CreateReadBackFailureIsInternal(t *testing.T) {
	RegisterTestingT(t)

	repo := &goalRepoStub{readErr: domain.ErrGoalNotFound}
	repo.reads = 1
	gs := service.NewGoalService(repo, validation.NewValidator(), nil)

	_, err := gs.Create(ctx, GoalRequest{Name: Some("Lost")})

	Expect(err).NotTo(BeNil())
	Expect(errors.Is(err, domain.ErrNotFound)).To(BeFalse())
}
