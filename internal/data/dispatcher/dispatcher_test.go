package dispatcher

import (
	"errors"
	"strings"
	"testing"
)

const (
	kindPing EventKind = "ping"
	kindPong EventKind = "pong"
)

func TestPublishRunsHandlersInSubscriptionOrder(t *testing.T) {
	d := New()
	var calls []string
	d.Subscribe(kindPing, func(p any) error {
		calls = append(calls, "a:"+p.(string))
		return nil
	})
	d.Subscribe(kindPing, func(p any) error {
		calls = append(calls, "b:"+p.(string))
		return nil
	})
	d.Subscribe(kindPong, func(any) error {
		calls = append(calls, "pong")
		return nil
	})

	if err := d.Publish(kindPing, "x"); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if strings.Join(calls, ",") != "a:x,b:x" {
		t.Fatalf("unexpected calls %v", calls)
	}
}

func TestPublishWithoutSubscribersIsNoOp(t *testing.T) {
	d := New()
	if err := d.Publish(kindPing, nil); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	d := New()
	calls := 0
	token := d.Subscribe(kindPing, func(any) error {
		calls++
		return nil
	})
	if d.Subscribers(kindPing) != 1 {
		t.Fatalf("expected one subscriber")
	}
	if !d.Unsubscribe(token) {
		t.Fatalf("expected token to be found")
	}
	if d.Unsubscribe(token) {
		t.Fatalf("expected second unsubscribe to report false")
	}
	_ = d.Publish(kindPing, nil)
	if calls != 0 {
		t.Fatalf("expected no calls after unsubscribe, got %d", calls)
	}
	if d.Subscribers(kindPing) != 0 {
		t.Fatalf("expected no subscribers left")
	}
}

func TestTokensAreUnique(t *testing.T) {
	d := New()
	seen := map[Token]struct{}{}
	for i := 0; i < 50; i++ {
		token := d.Subscribe(kindPing, func(any) error { return nil })
		if _, dup := seen[token]; dup {
			t.Fatalf("duplicate token %s", token)
		}
		seen[token] = struct{}{}
	}
}

func TestHandlerErrorsAreJoinedAndDoNotStopDelivery(t *testing.T) {
	d := New()
	errFirst := errors.New("first failed")
	reached := false
	d.Subscribe(kindPing, func(any) error { return errFirst })
	d.Subscribe(kindPing, func(any) error {
		reached = true
		return nil
	})
	err := d.Publish(kindPing, nil)
	if !errors.Is(err, errFirst) {
		t.Fatalf("expected joined error to wrap errFirst, got %v", err)
	}
	if !reached {
		t.Fatalf("expected second handler to run")
	}
}

func TestSubscribeDuringPublishAffectsOnlyLaterPublishes(t *testing.T) {
	d := New()
	late := 0
	d.Subscribe(kindPing, func(any) error {
		d.Subscribe(kindPing, func(any) error {
			late++
			return nil
		})
		return nil
	})
	_ = d.Publish(kindPing, nil)
	if late != 0 {
		t.Fatalf("handler added mid-publish must not run in the same publish")
	}
	_ = d.Publish(kindPing, nil)
	if late != 1 {
		t.Fatalf("expected late handler to run once, got %d", late)
	}
}

func TestRecorderKeepsHistory(t *testing.T) {
	r := NewRecorder(nil)
	boom := errors.New("boom")
	r.Subscribe(kindPong, func(any) error { return boom })
	_ = r.Publish(kindPing, 1)
	_ = r.Publish(kindPong, 2)

	records := r.Records()
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Kind != kindPing || records[0].Payload != 1 || records[0].Err != nil {
		t.Fatalf("unexpected first record %#v", records[0])
	}
	if !errors.Is(records[1].Err, boom) {
		t.Fatalf("expected recorded error, got %v", records[1].Err)
	}
	if kinds := r.Kinds(); kinds[1] != kindPong {
		t.Fatalf("unexpected kinds %v", kinds)
	}
	r.Reset()
	if len(r.Records()) != 0 {
		t.Fatalf("expected empty history after reset")
	}
}
