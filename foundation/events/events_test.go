package events_test

import (
	"testing"

	"github.com/ardanlabs/minichain/foundation/events"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Events(t *testing.T) {
	t.Log("Given the need to deliver viewer events to receivers.")
	{
		evts := events.New("viewer:")

		ch1 := evts.Acquire("1")
		ch2 := evts.Acquire("2")
		if evts.Acquire("1") != ch1 {
			t.Fatalf("\t%s\tShould return the same channel for the same id.", failed)
		}
		t.Logf("\t%s\tShould return the same channel for the same id.", success)

		if evts.Send("chain: Mine: started") {
			t.Fatalf("\t%s\tShould not deliver messages without the prefix.", failed)
		}
		if !evts.Send("viewer: block: 1") {
			t.Fatalf("\t%s\tShould deliver messages with the prefix.", failed)
		}

		for _, ch := range []<-chan string{ch1, ch2} {
			select {
			case msg := <-ch:
				if msg != "block: 1" {
					t.Fatalf("\t%s\tShould strip the prefix: %q", failed, msg)
				}
			default:
				t.Fatalf("\t%s\tShould receive the message on every channel.", failed)
			}
		}
		t.Logf("\t%s\tShould receive the stripped message on every channel.", success)

		if err := evts.Release("1"); err != nil {
			t.Fatalf("\t%s\tShould be able to release a channel: %v", failed, err)
		}
		if _, open := <-ch1; open {
			t.Fatalf("\t%s\tShould close a released channel.", failed)
		}
		if err := evts.Release("1"); err == nil {
			t.Fatalf("\t%s\tShould not release an unknown id.", failed)
		}
		t.Logf("\t%s\tShould release channels once.", success)

		for i := 0; i < 200; i++ {
			evts.Send("viewer: flood")
		}
		t.Logf("\t%s\tShould not block on a full receiver.", success)

		evts.Shutdown()
		if evts.Count() != 0 {
			t.Fatalf("\t%s\tShould remove all receivers on shutdown.", failed)
		}
		for range ch2 {
		}
		t.Logf("\t%s\tShould close all receivers on shutdown.", success)
	}
}
