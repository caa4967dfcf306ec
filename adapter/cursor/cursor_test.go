package cursor

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/vinicius-lino-figueiredo/upim/domain"
)

type decoderMock struct{ mock.Mock }

// Decode implements [domain.Decoder].
func (d *decoderMock) Decode(src any, tgt any) error {
	return d.Called(src, tgt).Error(0)
}

type Contact struct {
	Name  string
	Index int
}

type CursorTestSuite struct {
	suite.Suite
	rows []domain.Row
}

func (s *CursorTestSuite) SetupSuite() {
	s.rows = make([]domain.Row, 100)
	for n := range s.rows {
		name := "Contact " + strconv.Itoa(n)
		s.rows[n] = domain.Row{
			Name: name,
			Values: []domain.Value{
				{Field: "Name", Value: name, Found: true},
				{Field: "Index", Value: strconv.Itoa(n), Found: true},
			},
		}
	}
}

func (s *CursorTestSuite) TestNoRows() {
	cur, err := NewCursor(context.Background(), nil)
	s.NoError(err)
	s.False(cur.Next())
	s.NoError(cur.Err())
}

func (s *CursorTestSuite) TestStructs() {
	cur, err := NewCursor(context.Background(), s.rows)
	s.NoError(err)

	count := 0
	for cur.Next() {
		var c Contact
		s.NoError(cur.Scan(context.Background(), &c))
		s.Equal(count, c.Index)
		s.Equal(s.rows[count].Name, c.Name)
		count++
	}
	s.Equal(len(s.rows), count)
	s.NoError(cur.Err())
}

func (s *CursorTestSuite) TestRows() {
	cur, err := NewCursor(context.Background(), s.rows[:2])
	s.NoError(err)

	var got []domain.Row
	for cur.Next() {
		var row domain.Row
		s.NoError(cur.Scan(context.Background(), &row))
		got = append(got, row)
	}
	s.Equal(s.rows[:2], got)
}

func (s *CursorTestSuite) TestReadClosed() {
	cur, err := NewCursor(context.Background(), s.rows)
	s.NoError(err)

	s.True(cur.Next())
	s.NoError(cur.Close())
	s.False(cur.Next())
	s.ErrorIs(cur.Err(), domain.ErrCursorClosed)
	s.ErrorIs(cur.Scan(context.Background(), new(Contact)), domain.ErrCursorClosed)
}

func (s *CursorTestSuite) TestCreateClosedContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cur, err := NewCursor(ctx, s.rows)
	s.ErrorIs(err, context.Canceled)
	s.Nil(cur)
}

func (s *CursorTestSuite) TestCancelAfterCreation() {
	ctx, cancel := context.WithCancel(context.Background())

	cur, err := NewCursor(ctx, s.rows)
	s.NoError(err)

	cancel()
	<-ctx.Done()

	s.False(cur.Next())
	s.ErrorIs(cur.Err(), context.Canceled)
}

func (s *CursorTestSuite) TestCancelBeforeScan() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cur, err := NewCursor(ctx, s.rows)
	s.NoError(err)

	count := 0
	for cur.Next() {
		cancel()
		<-ctx.Done()

		var c Contact
		s.ErrorIs(cur.Scan(context.Background(), &c), context.Canceled)
		count++
	}
	s.Equal(1, count)
}

func (s *CursorTestSuite) TestScanClosedContext() {
	cur, err := NewCursor(context.Background(), s.rows)
	s.NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s.True(cur.Next())
	var c Contact
	s.ErrorIs(cur.Scan(ctx, &c), context.Canceled)
}

func (s *CursorTestSuite) TestScanWithoutNext() {
	cur, err := NewCursor(context.Background(), s.rows)
	s.NoError(err)

	s.ErrorIs(cur.Scan(context.Background(), new(Contact)), domain.ErrScanBeforeNext)
}

func (s *CursorTestSuite) TestCloseClosed() {
	cur, err := NewCursor(context.Background(), s.rows)
	s.NoError(err)

	s.NoError(cur.Close())
	s.ErrorIs(cur.Close(), domain.ErrCursorClosed)
}

func (s *CursorTestSuite) TestCustomDecoder() {
	dec := new(decoderMock)
	cur, err := NewCursor(context.Background(), s.rows[:1], domain.WithCursorDecoder(dec))
	s.NoError(err)

	fail := errors.New("decoder error")
	target := new(Contact)
	dec.On("Decode", s.rows[0], target).Return(fail).Once()

	s.True(cur.Next())
	s.ErrorIs(cur.Scan(context.Background(), target), fail)
	dec.AssertExpectations(s.T())
}

func TestCursorTestSuite(t *testing.T) {
	suite.Run(t, new(CursorTestSuite))
}
