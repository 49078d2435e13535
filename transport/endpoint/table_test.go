package endpoint

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"
	"time"

	"sockaddr-stack/transport/sockaddr"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
)

type TableTestSuite struct {
	suite.Suite

	clock *clock.Mock
	logs  *bytes.Buffer
	table *Table
}

func TestTableTestSuite(t *testing.T) {
	suite.Run(t, new(TableTestSuite))
}

func (s *TableTestSuite) SetupTest() {
	s.clock = clock.NewMock()
	s.logs = bytes.NewBuffer(nil)
	s.table = New(Options{
		Logger: slog.New(slog.NewTextHandler(s.logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
		Clock:  s.clock,
	})
}

func (s *TableTestSuite) addr(text string, port uint16) sockaddr.Addr {
	a, err := sockaddr.New(text, port)
	s.Require().NoError(err)
	return a
}

func (s *TableTestSuite) TestTouch() {
	a := s.addr("10.0.0.1", 53)

	entry, added, err := s.table.Touch(a)
	s.Require().NoError(err)
	s.True(added)
	s.Equal(uint64(1), entry.Hits)
	s.Equal(s.clock.Now(), entry.FirstSeen)
	s.Equal(s.clock.Now(), entry.LastSeen)
	s.Contains(s.logs.String(), "endpoint added")
	s.Contains(s.logs.String(), "10.0.0.1:53")

	s.clock.Add(time.Minute)

	// Same endpoint built independently.
	entry, added, err = s.table.Touch(s.addr("10.0.0.1", 53))
	s.Require().NoError(err)
	s.False(added)
	s.Equal(uint64(2), entry.Hits)
	s.Equal(s.clock.Now().Add(-time.Minute), entry.FirstSeen)
	s.Equal(s.clock.Now(), entry.LastSeen)

	s.Equal(1, s.table.Len())
}

func (s *TableTestSuite) TestTouchUnspecified() {
	_, _, err := s.table.Touch(sockaddr.Addr{})
	s.ErrorIs(err, sockaddr.ErrAddressFamilyUnsupported)
	s.Zero(s.table.Len())
}

func (s *TableTestSuite) TestGetRemove() {
	a := s.addr("::1", 443)

	_, found := s.table.Get(a)
	s.False(found)
	s.False(s.table.Remove(a))

	_, _, err := s.table.Touch(a)
	s.Require().NoError(err)

	entry, found := s.table.Get(a)
	s.True(found)
	s.True(entry.Addr.Equal(a))

	s.True(s.table.Remove(a))
	s.Zero(s.table.Len())
	s.Contains(s.logs.String(), "endpoint removed")
}

func (s *TableTestSuite) TestAscendOrder() {
	inputs := []sockaddr.Addr{
		s.addr("::1", 80),
		s.addr("10.0.0.2", 80),
		s.addr("10.0.0.1", 8080),
		s.addr("10.0.0.1", 80),
		s.addr("fe80::1", 1),
	}
	for _, a := range inputs {
		_, _, err := s.table.Touch(a)
		s.Require().NoError(err)
	}

	var got []string
	s.table.Ascend(func(e Entry) bool {
		got = append(got, e.Addr.String())
		return true
	})

	s.Equal([]string{
		"10.0.0.1:80",
		"10.0.0.2:80",
		"10.0.0.1:8080",
		"[fe80::1]:1",
		"[::1]:80",
	}, got)

	count := 0
	s.table.Ascend(func(Entry) bool {
		count++
		return count < 2
	})
	s.Equal(2, count)
}

func (s *TableTestSuite) TestAscendCallback() {
	_, _, err := s.table.Touch(s.addr("10.0.0.1", 1))
	s.Require().NoError(err)
	_, _, err = s.table.Touch(s.addr("10.0.0.2", 1))
	s.Require().NoError(err)

	// Removing from inside the callback must not deadlock.
	s.table.Ascend(func(e Entry) bool {
		s.table.Remove(e.Addr)
		return true
	})
	s.Zero(s.table.Len())
}

func (s *TableTestSuite) TestRange() {
	for _, port := range []uint16{1, 2, 3, 4} {
		_, _, err := s.table.Touch(s.addr("10.0.0.1", port))
		s.Require().NoError(err)
	}
	_, _, err := s.table.Touch(s.addr("::1", 2))
	s.Require().NoError(err)

	entries := s.table.Range(s.addr("10.0.0.1", 2), s.addr("10.0.0.1", 4))
	s.Require().Len(entries, 2)
	s.Equal("10.0.0.1:2", entries[0].Addr.String())
	s.Equal("10.0.0.1:3", entries[1].Addr.String())
}

func (s *TableTestSuite) TestExpire() {
	old := s.addr("10.0.0.1", 1)
	fresh := s.addr("10.0.0.2", 1)

	_, _, err := s.table.Touch(old)
	s.Require().NoError(err)
	s.clock.Add(2 * time.Minute)
	_, _, err = s.table.Touch(fresh)
	s.Require().NoError(err)

	s.Zero(s.table.Expire(5 * time.Minute))

	s.Equal(1, s.table.Expire(time.Minute))
	s.Equal(1, s.table.Len())

	_, found := s.table.Get(old)
	s.False(found)
	_, found = s.table.Get(fresh)
	s.True(found)
	s.Contains(s.logs.String(), "expired endpoints")
}

func TestTableDefaults(t *testing.T) {
	table := New(Options{Degree: 1})

	a, err := sockaddr.New("127.0.0.1", 80)
	if err != nil {
		t.Fatal(err)
	}
	if _, added, err := table.Touch(a); err != nil || !added {
		t.Fatalf("touch: added=%v err=%v", added, err)
	}
	if table.Len() != 1 {
		t.Fatalf("expected 1 endpoint, got %d", table.Len())
	}
}

func TestTableConcurrent(t *testing.T) {
	defer goleak.VerifyNone(t)

	table := New(Options{Clock: clock.NewMock()})

	const workers = 8
	const perWorker = 64

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for port := uint16(1); port <= perWorker; port++ {
				a, err := sockaddr.New("192.0.2.1", port)
				if err != nil {
					t.Error(err)
					return
				}
				if _, _, err := table.Touch(a); err != nil {
					t.Error(err)
					return
				}
				table.Get(a)
				table.Len()
			}
		}()
	}
	wg.Wait()

	if table.Len() != perWorker {
		t.Fatalf("expected %d endpoints, got %d", perWorker, table.Len())
	}

	var hits uint64
	table.Ascend(func(e Entry) bool {
		hits += e.Hits
		return true
	})
	if hits != workers*perWorker {
		t.Fatalf("expected %d hits, got %d", workers*perWorker, hits)
	}
}
