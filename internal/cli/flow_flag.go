package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/dayframe/internal/domain"
	"github.com/spf13/pflag"
)

// flowNames lists flows in the order shown in help text.
var flowNames = []domain.Flow{
	domain.FlowMorning,
	domain.FlowEvening,
	domain.FlowAdhoc,
	domain.FlowChallengeIntro,
}

// eveningStartHour is when the default check-in switches to evening.
const eveningStartHour = 15

// flowValue is a pflag.Value that only accepts known flows.
type flowValue domain.Flow

var _ pflag.Value = (*flowValue)(nil)

func newFlowValue(def domain.Flow, p *domain.Flow) *flowValue {
	*p = def
	return (*flowValue)(p)
}

func (f *flowValue) String() string { return string(*f) }

func (f *flowValue) Set(s string) error {
	flow, ok := domain.ParseFlow(strings.ToLower(strings.TrimSpace(s)))
	if !ok {
		return fmt.Errorf("unknown flow %q (want one of %s)", s, flowList())
	}
	*f = flowValue(flow)
	return nil
}

func (f *flowValue) Type() string { return "flow" }

func flowList() string {
	names := make([]string, len(flowNames))
	for i, fl := range flowNames {
		names[i] = string(fl)
	}
	return strings.Join(names, ", ")
}

// flowForTime picks the check-in flow for the time of day.
func flowForTime(now time.Time) domain.Flow {
	if now.Hour() >= eveningStartHour {
		return domain.FlowEvening
	}
	return domain.FlowMorning
}
