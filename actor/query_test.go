package actor

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// fakeAuto is a scripted decision-service actor. Each Decide call
// consumes one step; Rebind rotates through the model list.
type fakeAuto struct {
	replies []string
	errs    []error
	calls   int
	models  []string
	model   int
	rebinds int
}

func (f *fakeAuto) Name() string { return "fake" }

func (f *fakeAuto) Decide(ctx context.Context, prompt string) (string, error) {
	i := f.calls
	f.calls++
	var reply string
	var err error
	if i < len(f.replies) {
		reply = f.replies[i]
	}
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return reply, err
}

func (f *fakeAuto) Notify(text string, private bool) {}

func (f *fakeAuto) Rebind() bool {
	f.rebinds++
	if len(f.models) < 2 {
		return false
	}
	f.model = (f.model + 1) % len(f.models)
	return true
}

func (f *fakeAuto) Model() string {
	if len(f.models) == 0 {
		return "fake-model"
	}
	return f.models[f.model]
}

// human is a pass-through actor with no Automated implementation.
type human struct {
	reply string
	err   error
	calls int
}

func (h *human) Name() string { return "human" }

func (h *human) Decide(ctx context.Context, prompt string) (string, error) {
	h.calls++
	return h.reply, h.err
}

func (h *human) Notify(text string, private bool) {}

func TestAskRetriesRateLimitWithRebind(t *testing.T) {
	rateErr := errors.New("googleapi: Error 429: rate limit exceeded")
	f := &fakeAuto{
		replies: []string{"", "", "seat_3"},
		errs:    []error{rateErr, rateErr, nil},
		models:  []string{"model-a", "model-b"},
	}

	got, err := Ask(context.Background(), f, "pick a target")
	if err != nil {
		t.Fatalf("Ask returned error: %v", err)
	}
	if got != "seat_3" {
		t.Fatalf("Ask = %q, want seat_3", got)
	}
	if f.calls != 3 {
		t.Errorf("Decide called %d times, want 3", f.calls)
	}
	if f.rebinds != 2 {
		t.Errorf("Rebind called %d times, want 2", f.rebinds)
	}
}

func TestAskStopsOnPermanentError(t *testing.T) {
	permErr := errors.New("invalid api key")
	f := &fakeAuto{errs: []error{permErr}}

	_, err := Ask(context.Background(), f, "pick a target")
	if !errors.Is(err, permErr) {
		t.Fatalf("Ask error = %v, want %v", err, permErr)
	}
	if f.calls != 1 {
		t.Errorf("Decide called %d times, want 1 (no retry on permanent error)", f.calls)
	}
}

func TestAskSalvagesPayloadFromError(t *testing.T) {
	f := &fakeAuto{
		errs: []error{fmt.Errorf("provider failure: {'response': 'i vote for: seat_2'}")},
	}

	got, err := Ask(context.Background(), f, "vote")
	if err != nil {
		t.Fatalf("Ask returned error: %v", err)
	}
	if got != "i vote for: seat_2" {
		t.Fatalf("Ask = %q, want salvaged payload", got)
	}
}

func TestAskStripsThinkingMarkup(t *testing.T) {
	f := &fakeAuto{replies: []string{"<think>they suspect me</think>\n\nI vote for: seat_1"}}

	got, err := Ask(context.Background(), f, "vote")
	if err != nil {
		t.Fatalf("Ask returned error: %v", err)
	}
	if got != "I vote for: seat_1" {
		t.Fatalf("Ask = %q, want thinking markup removed", got)
	}
}

func TestAskHumanPassThrough(t *testing.T) {
	h := &human{reply: "<think>raw</think> keep as typed"}

	got, err := Ask(context.Background(), h, "vote")
	if err != nil {
		t.Fatalf("Ask returned error: %v", err)
	}
	if got != h.reply {
		t.Fatalf("Ask = %q, want unmodified human answer %q", got, h.reply)
	}
	if h.calls != 1 {
		t.Errorf("Decide called %d times, want 1", h.calls)
	}
}

func TestAskHonorsContextCancellation(t *testing.T) {
	rateErr := errors.New("429 resource_exhausted")
	f := &fakeAuto{errs: []error{rateErr, rateErr, rateErr}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Ask(ctx, f, "vote")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Ask error = %v, want context.Canceled", err)
	}
	if f.calls != 1 {
		t.Errorf("Decide called %d times, want 1 after cancellation", f.calls)
	}
}

func TestIsRateLimited(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("Error 429: too many requests"), true},
		{errors.New("RESOURCE_EXHAUSTED: quota"), true},
		{errors.New("provider rate limit hit"), true},
		{errors.New("invalid api key"), false},
	}
	for _, tt := range tests {
		if got := IsRateLimited(tt.err); got != tt.want {
			t.Errorf("IsRateLimited(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestSalvage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"json body", errors.New(`failed: {"response": "seat_4"}`), "seat_4"},
		{"python dict body", errors.New("failed: {'content': 'hello'}"), "hello"},
		{"text key", errors.New(`failed: {"text": " padded "}`), "padded"},
		{"no braces", errors.New("plain failure"), ""},
		{"unusable body", errors.New(`failed: {"status": 500}`), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Salvage(tt.err); got != tt.want {
				t.Errorf("Salvage = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStripThinking(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"no markup", "hello", "hello"},
		{"single tag", "<think>hidden</think>visible", "visible"},
		{"thinking tag", "<thinking>hidden</thinking>visible", "visible"},
		{"multiline body", "<think>line one\nline two</think>\n\nafter", "after"},
		{"case insensitive", "<THINK>x</THINK>kept", "kept"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripThinking(tt.text); got != tt.want {
				t.Errorf("StripThinking(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
