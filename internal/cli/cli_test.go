package cli_test

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	. "goalsapp/pkg/test"

	"goalsapp/internal/adapter/database"
	api "goalsapp/internal/adapter/http"
	"goalsapp/internal/cli"
	"goalsapp/pkg/config"
)

type CLISuite struct {
	suite.Suite
	DB     *database.DB
	Server *httptest.Server
}

func (s *CLISuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.DB = InitTestDB()

	cfg := config.GetDefaultConfig()
	cfg.RateLimitEnabled = false

	container := api.NewContainer(s.DB, nil, nil)
	s.Server = httptest.NewServer(api.SetupRouterWithConfig(container.Handlers(), nil, nil, cfg))
}

func (s *CLISuite) TearDownTest() {
	s.Server.Close()
	s.DB.Close()
}

func TestCLISuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(CLISuite))
}

func (s *CLISuite) run(args ...string) (string, error) {
	out := new(bytes.Buffer)

	cmd := cli.NewRootCmd()
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(append([]string{"--api-url", s.Server.URL}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func (s *CLISuite) TestEmptyGoalList() {
	out, err := s.run("goals", "list")

	Expect(err).NotTo(HaveOccurred())
	Expect(out).To(ContainSubstring("No goals yet"))
}

func (s *CLISuite) TestCreateAndShowGoal() {
	out, err := s.run("goals", "create", "--name", "Learn Go", "--start", "2025-01-01")
	Expect(err).NotTo(HaveOccurred())
	Expect(out).To(Equal("Created goal #1: Learn Go\n"))

	out, err = s.run("goals", "list")
	Expect(err).NotTo(HaveOccurred())
	Expect(out).To(ContainSubstring("Learn Go"))
	Expect(out).To(ContainSubstring("2025-01-01"))

	out, err = s.run("goals", "show", "1")
	Expect(err).NotTo(HaveOccurred())
	Expect(out).To(ContainSubstring("Goal #1: Learn Go"))
	Expect(out).To(ContainSubstring("Planned end date: not specified"))
	Expect(out).To(ContainSubstring("This goal has no tasks yet."))
}

func (s *CLISuite) TestCreateGoalWithoutNameShowsServerMessage() {
	_, err := s.run("goals", "create")

	Expect(err).To(HaveOccurred())
	Expect(err.Error()).To(Equal("goal name is required"))
}

func (s *CLISuite) TestEditGoalSendsOnlyChangedFlags() {
	_, err := s.run("goals", "create", "--name", "Run", "--start", "2025-01-01", "--end", "2025-06-01")
	Expect(err).NotTo(HaveOccurred())

	out, err := s.run("goals", "edit", "1", "--name", "Run a marathon", "--clear-end")
	Expect(err).NotTo(HaveOccurred())
	Expect(out).To(ContainSubstring("Goal #1: Run a marathon"))
	Expect(out).To(ContainSubstring("Start date:       2025-01-01"))
	Expect(out).To(ContainSubstring("Planned end date: not specified"))
}

func (s *CLISuite) TestEditRejectsConflictingFlags() {
	_, err := s.run("goals", "edit", "1", "--start", "2025-01-01", "--clear-start")

	Expect(err).To(HaveOccurred())
}

func (s *CLISuite) TestTaskLifecycle() {
	_, err := s.run("goals", "create", "--name", "Ship it")
	Expect(err).NotTo(HaveOccurred())

	out, err := s.run("tasks", "add", "1", "--title", "Write tests", "--description", "table driven")
	Expect(err).NotTo(HaveOccurred())
	Expect(out).To(Equal("Added task #1 to goal #1: Write tests\n"))

	out, err = s.run("tasks", "list", "1")
	Expect(err).NotTo(HaveOccurred())
	Expect(out).To(ContainSubstring("[ ]"))
	Expect(out).To(ContainSubstring("table driven"))

	out, err = s.run("tasks", "toggle", "1")
	Expect(err).NotTo(HaveOccurred())
	Expect(out).To(ContainSubstring("Task #1 [x] Write tests"))

	out, err = s.run("tasks", "edit", "1", "--completed=false", "--clear-description")
	Expect(err).NotTo(HaveOccurred())
	Expect(out).To(ContainSubstring("Task #1 [ ] Write tests"))
	Expect(out).To(ContainSubstring("Description: -"))

	out, err = s.run("goals", "show", "1")
	Expect(err).NotTo(HaveOccurred())
	Expect(out).To(ContainSubstring("Write tests"))

	out, err = s.run("tasks", "delete", "1")
	Expect(err).NotTo(HaveOccurred())
	Expect(out).To(Equal("Deleted task #1\n"))

	_, err = s.run("tasks", "show", "1")
	Expect(err).To(MatchError("task not found"))
}

func (s *CLISuite) TestAddTaskToMissingGoal() {
	_, err := s.run("tasks", "add", "42", "--title", "Orphan")

	Expect(err).To(MatchError("goal not found"))
}

func (s *CLISuite) TestDeleteGoal() {
	_, err := s.run("goals", "create", "--name", "Temporary")
	Expect(err).NotTo(HaveOccurred())

	out, err := s.run("goals", "delete", "1")
	Expect(err).NotTo(HaveOccurred())
	Expect(out).To(Equal("Deleted goal #1\n"))

	_, err = s.run("goals", "show", "1")
	Expect(err).To(MatchError("goal not found"))
}

func (s *CLISuite) TestInvalidID() {
	_, err := s.run("goals", "show", "abc")

	Expect(err).To(MatchError(`id must be a positive integer, got "abc"`))
}
