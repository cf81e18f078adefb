package status

import "testing"

func TestStream_LatestWins(t *testing.T) {
	s := NewStream()
	for i := 0; i <= 100; i += 10 {
		s.Report(i, "working")
	}

	got := <-s.C()
	if got.Percent != 100 {
		t.Errorf("received %+v, want 100%%", got)
	}

	select {
	case p := <-s.C():
		t.Errorf("unexpected buffered notification %+v", p)
	default:
	}
}

func TestStream_Close(t *testing.T) {
	s := NewStream()
	s.Report(10, "a")
	s.Close()
	s.Close()
	s.Report(20, "after close")

	p, ok := <-s.C()
	if !ok || p.Percent != 10 {
		t.Errorf("first receive = %+v, %v; want pending 10%% notification", p, ok)
	}
	if _, ok := <-s.C(); ok {
		t.Error("expected closed channel")
	}
}

func TestStream_Nil(t *testing.T) {
	var s *Stream
	s.Report(50, "ignored")
	s.Close()
	if s.C() != nil {
		t.Error("nil stream should have nil channel")
	}
}
