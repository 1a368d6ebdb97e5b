package messaging

import (
	"context"
	"testing"

	"claimdesk/contexts/creator-earnings/claim-service/ports"
)

func TestHubRoutesByAudience(t *testing.T) {
	hub := NewHub(nil)
	ctx := context.Background()

	creator := hub.Subscribe("creator-1", "creator")
	reviewer := hub.Subscribe("reviewer-1", "account")
	admin := hub.Subscribe("admin-1", "admin")
	defer creator.Close()
	defer reviewer.Close()
	defer admin.Close()

	if err := hub.Publish(ctx, ports.Notification{
		Event:    "new_claim",
		Audience: ports.RoleAudience("account"),
	}); err != nil {
		t.Fatalf("publish to role: %v", err)
	}
	if err := hub.Publish(ctx, ports.Notification{
		Event:    "deduction_applied",
		Audience: ports.UserAudience("creator-1"),
	}); err != nil {
		t.Fatalf("publish to user: %v", err)
	}
	if err := hub.Publish(ctx, ports.Notification{
		Event:    "claim_locked",
		Audience: ports.BroadcastAudience(),
	}); err != nil {
		t.Fatalf("broadcast: %v", err)
	}

	drain := func(sub *Subscription) []string {
		var events []string
		for {
			select {
			case n := <-sub.C:
				events = append(events, n.Event)
			default:
				return events
			}
		}
	}

	creatorEvents := drain(creator)
	if len(creatorEvents) != 2 || creatorEvents[0] != "deduction_applied" || creatorEvents[1] != "claim_locked" {
		t.Fatalf("unexpected creator events: %v", creatorEvents)
	}
	reviewerEvents := drain(reviewer)
	if len(reviewerEvents) != 2 || reviewerEvents[0] != "new_claim" {
		t.Fatalf("unexpected reviewer events: %v", reviewerEvents)
	}
	adminEvents := drain(admin)
	if len(adminEvents) != 1 || adminEvents[0] != "claim_locked" {
		t.Fatalf("unexpected admin events: %v", adminEvents)
	}
}

func TestHubDropsInsteadOfBlockingSlowSubscribers(t *testing.T) {
	hub := NewHub(nil)
	ctx := context.Background()

	sub := hub.Subscribe("creator-1", "creator")
	defer sub.Close()

	// Overfill the subscriber buffer; Publish must return without blocking.
	for i := 0; i < cap(sub.C)+10; i++ {
		if err := hub.Publish(ctx, ports.Notification{
			Event:    "claim_status_changed",
			Audience: ports.BroadcastAudience(),
		}); err != nil {
			t.Fatalf("publish %d: %v", i, err)
		}
	}

	delivered := 0
	for {
		select {
		case <-sub.C:
			delivered++
			continue
		default:
		}
		break
	}
	if delivered != cap(sub.C) {
		t.Fatalf("expected exactly %d buffered notifications, got %d", cap(sub.C), delivered)
	}
}

func TestClosedSubscriptionStopsReceiving(t *testing.T) {
	hub := NewHub(nil)
	ctx := context.Background()

	sub := hub.Subscribe("creator-1", "creator")
	sub.Close()

	if err := hub.Publish(ctx, ports.Notification{
		Event:    "new_claim",
		Audience: ports.BroadcastAudience(),
	}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	select {
	case n := <-sub.C:
		t.Fatalf("closed subscription received %q", n.Event)
	default:
	}
}
