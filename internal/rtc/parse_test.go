package rtc

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/danmuck/rtcctl/internal/testutil/testlog"
	"github.com/google/go-cmp/cmp"
)

const mytypeCode uint8 = 7

func testResolver() Resolver {
	types := map[string]uint8{"mytype": mytypeCode, "poller": 0}
	return ResolverFunc(func(name string) (uint8, bool) {
		code, ok := types[name]
		return code, ok
	})
}

type recordingReporter struct {
	mu   sync.Mutex
	errs []error
}

func (r *recordingReporter) Report(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func TestParseTargetEmptyIsBroadcast(t *testing.T) {
	testlog.Start(t)
	for _, cmd := range []Command{LogLevelIncrease, LogLevelDecrease, Command(200)} {
		task, err := ParseTarget("", cmd, testResolver(), NopReporter{})
		if err != nil {
			t.Fatalf("parse empty: %v", err)
		}
		want := Task{Command: cmd, Scope: Broadcast()}
		if diff := cmp.Diff(want, task); diff != "" {
			t.Fatalf("unexpected task (-want +got):\n%s", diff)
		}
	}
}

func TestParseTargetProcessIdentifier(t *testing.T) {
	testlog.Start(t)
	for _, n := range []int{0, 1, 42, 1000, 65534, 65535} {
		task, err := ParseTarget("="+strconv.Itoa(n), LogLevelIncrease, testResolver(), NopReporter{})
		if err != nil {
			t.Fatalf("parse pid %d: %v", n, err)
		}
		want := Task{Command: LogLevelIncrease, Scope: ByProcessID(), Data: uint16(n)}
		if diff := cmp.Diff(want, task); diff != "" {
			t.Fatalf("pid %d (-want +got):\n%s", n, diff)
		}
	}
}

func TestParseTargetInvalidIdentifier(t *testing.T) {
	testlog.Start(t)
	for _, opt := range []string{"=65536", "=99999999999", "=12ab", "=1,2", "=1 ", "=0x10"} {
		_, err := ParseTarget(opt, LogLevelIncrease, testResolver(), NopReporter{})
		if !errors.Is(err, ErrInvalidIdentifier) {
			t.Fatalf("%q: expected ErrInvalidIdentifier, got %v", opt, err)
		}
	}
}

func TestParseTargetUnknownOption(t *testing.T) {
	testlog.Start(t)
	for _, opt := range []string{"unknown", "poller", " =1", "1"} {
		_, err := ParseTarget(opt, LogLevelIncrease, testResolver(), NopReporter{})
		if !errors.Is(err, ErrUnknownOption) {
			t.Fatalf("%q: expected ErrUnknownOption, got %v", opt, err)
		}
		var optErr *OptionError
		if !errors.As(err, &optErr) || optErr.Option != opt {
			t.Fatalf("%q: expected OptionError carrying the option, got %#v", opt, err)
		}
	}
}

func TestParseTargetProcessType(t *testing.T) {
	testlog.Start(t)
	task, err := ParseTarget("=mytype", LogLevelDecrease, testResolver(), NopReporter{})
	if err != nil {
		t.Fatalf("parse type: %v", err)
	}
	if diff := cmp.Diff(Task{Command: LogLevelDecrease, Scope: ByProcessType(mytypeCode)}, task); diff != "" {
		t.Fatalf("type without ordinal (-want +got):\n%s", diff)
	}

	task, err = ParseTarget("=mytype,5", LogLevelIncrease, testResolver(), NopReporter{})
	if err != nil {
		t.Fatalf("parse type with ordinal: %v", err)
	}
	if diff := cmp.Diff(Task{Command: LogLevelIncrease, Scope: ByProcessType(mytypeCode), Data: 5}, task); diff != "" {
		t.Fatalf("type with ordinal (-want +got):\n%s", diff)
	}

	task, err = ParseTarget("=mytype,65535", LogLevelIncrease, testResolver(), NopReporter{})
	if err != nil || task.Data != 65535 {
		t.Fatalf("max ordinal: task=%v err=%v", task, err)
	}
}

func TestParseTargetOrdinalFailures(t *testing.T) {
	testlog.Start(t)
	cases := []struct {
		opt  string
		want error
	}{
		{"=mytype,0", ErrZeroOrdinal},
		{"=mytype,00", ErrZeroOrdinal},
		{"=unknown,0", ErrZeroOrdinal},
		{"=mytype,", ErrInvalidOrdinal},
		{"=mytype,abc", ErrInvalidOrdinal},
		{"=mytype,65536", ErrInvalidOrdinal},
		{"=mytype,-1", ErrInvalidOrdinal},
		{"=mytype,1,2", ErrInvalidOrdinal},
		{"=unknown,x", ErrInvalidOrdinal},
	}
	for _, tc := range cases {
		_, err := ParseTarget(tc.opt, LogLevelIncrease, testResolver(), NopReporter{})
		if !errors.Is(err, tc.want) {
			t.Fatalf("%q: expected %v, got %v", tc.opt, tc.want, err)
		}
	}
}

func TestParseTargetUnknownProcessType(t *testing.T) {
	testlog.Start(t)
	for _, opt := range []string{"=", "=nosuch", "=nosuch,3", "=MyType", "=,3"} {
		_, err := ParseTarget(opt, LogLevelIncrease, testResolver(), NopReporter{})
		if !errors.Is(err, ErrUnknownProcessType) {
			t.Fatalf("%q: expected ErrUnknownProcessType, got %v", opt, err)
		}
	}
	_, err := ParseTarget("=mytype", LogLevelIncrease, nil, NopReporter{})
	if !errors.Is(err, ErrUnknownProcessType) {
		t.Fatalf("nil resolver: expected ErrUnknownProcessType, got %v", err)
	}
}

func TestParseTargetReportsOncePerFailure(t *testing.T) {
	testlog.Start(t)
	rep := &recordingReporter{}
	p := NewParser(testResolver(), rep)

	for _, opt := range []string{"", "=12", "=mytype,3"} {
		if _, err := p.ParseTarget(opt, LogLevelIncrease); err != nil {
			t.Fatalf("%q: %v", opt, err)
		}
	}
	if len(rep.errs) != 0 {
		t.Fatalf("successful parses must not report, got %v", rep.errs)
	}

	failures := []string{"bogus", "=70000", "=mytype,x", "=mytype,0", "=nosuch"}
	for _, opt := range failures {
		_, err := p.ParseTarget(opt, LogLevelIncrease)
		if err == nil {
			t.Fatalf("%q: expected failure", opt)
		}
		last := rep.errs[len(rep.errs)-1]
		if last != err {
			t.Fatalf("%q: reported %v, returned %v", opt, last, err)
		}
	}
	if len(rep.errs) != len(failures) {
		t.Fatalf("expected %d diagnostics, got %d", len(failures), len(rep.errs))
	}
}

func TestOptionErrorMessages(t *testing.T) {
	testlog.Start(t)
	cases := map[string]string{
		"junk":      "unknown log level control option: junk",
		"=70000":    "process identifier must be unsigned short value",
		"=mytype,x": "process number must be unsigned short value",
		"=mytype,0": "process number cannot be zero",
		"=nosuch":   "unknown process type",
	}
	for opt, want := range cases {
		_, err := ParseTarget(opt, LogLevelIncrease, testResolver(), nil)
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Fatalf("%q: expected message containing %q, got %v", opt, want, err)
		}
	}
}

func TestParseTargetIsDeterministic(t *testing.T) {
	testlog.Start(t)
	layout := Layout{}
	for _, opt := range []string{"", "=4242", "=mytype", "=mytype,9"} {
		a, err := ParseTarget(opt, LogLevelIncrease, testResolver(), NopReporter{})
		if err != nil {
			t.Fatalf("%q: %v", opt, err)
		}
		b, err := ParseTarget(opt, LogLevelIncrease, testResolver(), NopReporter{})
		if err != nil {
			t.Fatalf("%q: %v", opt, err)
		}
		pa, err := layout.Encode(a)
		if err != nil {
			t.Fatalf("%q encode: %v", opt, err)
		}
		pb, err := layout.Encode(b)
		if err != nil {
			t.Fatalf("%q encode: %v", opt, err)
		}
		if pa != pb {
			t.Fatalf("%q: packed output differs: %#08x vs %#08x", opt, pa, pb)
		}
	}
}

func TestParseTargetFailingPathsDoNotAccumulate(t *testing.T) {
	p := NewParser(testResolver(), NopReporter{})
	for _, opt := range []string{"=mytype,0", "=nosuch", "=nosuch,4"} {
		allocs := testing.AllocsPerRun(200, func() {
			_, _ = p.ParseTarget(opt, LogLevelIncrease)
		})
		if allocs > 2 {
			t.Fatalf("%q: %.1f allocations per failing call", opt, allocs)
		}
	}
}

func TestParseTargetConcurrent(t *testing.T) {
	testlog.Start(t)
	p := NewParser(testResolver(), &recordingReporter{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				task, err := p.ParseTarget("=mytype,"+strconv.Itoa(i+1), LogLevelIncrease)
				if err != nil || task.Data != uint16(i+1) {
					t.Errorf("worker %d: task=%v err=%v", i, task, err)
					return
				}
				_, _ = p.ParseTarget("=nosuch", LogLevelIncrease)
			}
		}(i)
	}
	wg.Wait()
}

func TestErrorCode(t *testing.T) {
	if ErrorCode(nil) != "ok" {
		t.Fatalf("nil error should map to ok")
	}
	_, err := ParseTarget("=mytype,0", LogLevelIncrease, testResolver(), nil)
	if got := ErrorCode(err); got != "zero_ordinal" {
		t.Fatalf("unexpected code: %q", got)
	}
	if got := ErrorCode(errors.New("boom")); got != "internal" {
		t.Fatalf("unexpected code: %q", got)
	}
}
