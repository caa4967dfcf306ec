package projector

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/vinicius-lino-figueiredo/upim/adapter/contact"
	"github.com/vinicius-lino-figueiredo/upim/adapter/note"
	"github.com/vinicius-lino-figueiredo/upim/domain"
)

type fieldNavigatorMock struct {
	mock.Mock
}

// GetAddress implements [domain.FieldNavigator].
func (f *fieldNavigatorMock) GetAddress(field string) (string, string) {
	call := f.Called(field)
	return call.String(0), call.String(1)
}

// GetField implements [domain.FieldNavigator].
func (f *fieldNavigatorMock) GetField(rec domain.Record, field string) (string, bool) {
	call := f.Called(rec, field)
	return call.String(0), call.Bool(1)
}

type ProjectorTestSuite struct {
	suite.Suite
	proj *Projector
	rec  domain.Record
}

func (s *ProjectorTestSuite) SetupTest() {
	s.proj = NewProjector().(*Projector)

	n, err := note.Parse("[Name: Somebody]\n[Phone: 555]\n\n@employer\n[Name: Acme]\n")
	s.Require().NoError(err)
	s.rec, err = contact.NewContact("somebody.txt", n)
	s.Require().NoError(err)
}

func (s *ProjectorTestSuite) TestProject() {
	row := s.proj.Project(s.rec, []string{"Phone", "Employer:Name", "Missing"})
	s.Equal(domain.Row{
		Name: "Somebody",
		Path: "somebody.txt",
		Values: []domain.Value{
			{Field: "Phone", Value: "555", Found: true},
			{Field: "Employer:Name", Value: "Acme", Found: true},
			{Field: "Missing"},
		},
	}, row)
}

func (s *ProjectorTestSuite) TestEmptySelection() {
	row := s.proj.Project(s.rec, nil)
	s.Equal("Somebody", row.Name)
	s.Empty(row.Values)
}

func (s *ProjectorTestSuite) TestWildcard() {
	row := s.proj.Project(s.rec, []string{"Phone", Wildcard})
	s.Equal([]domain.Value{
		{Field: "Phone", Value: "555", Found: true},
		{Field: "Name", Value: "Somebody", Found: true},
		{Field: "Phone", Value: "555", Found: true},
		{Field: "employer:Name", Value: "Acme", Found: true},
	}, row.Values)
}

func (s *ProjectorTestSuite) TestFieldNavigator() {
	fn := new(fieldNavigatorMock)
	s.proj = NewProjector(WithFieldNavigator(fn)).(*Projector)
	fn.On("GetField", s.rec, "X").Return("y", true).Once()

	row := s.proj.Project(s.rec, []string{"X"})
	s.Equal([]domain.Value{{Field: "X", Value: "y", Found: true}}, row.Values)
	fn.AssertExpectations(s.T())
}

func (s *ProjectorTestSuite) TestDefaultGroup() {
	s.proj = NewProjector(WithDefaultGroup("employer")).(*Projector)

	row := s.proj.Project(s.rec, []string{"Name", Wildcard})
	s.Equal([]domain.Value{
		{Field: "Name", Value: "Acme", Found: true},
		{Field: "default:Name", Value: "Somebody", Found: true},
		{Field: "default:Phone", Value: "555", Found: true},
		{Field: "Name", Value: "Acme", Found: true},
	}, row.Values)
}

func TestProjectorTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectorTestSuite))
}
