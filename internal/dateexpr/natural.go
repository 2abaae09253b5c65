package dateexpr

import (
	"strings"
	"sync"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var (
	naturalOnce   sync.Once
	naturalParser *when.Parser
)

func natural() *when.Parser {
	naturalOnce.Do(func() {
		w := when.New(nil)
		w.Add(en.All...)
		w.Add(common.All...)
		naturalParser = w
	})
	return naturalParser
}

// parseNatural accepts expressions like "next friday" or "in 3 days".
// The match must cover the whole input. A result that kept the clock of
// now is treated as a bare day and placed with dayClock.
func (p *Parser) parseNatural(s string, now time.Time, dayClock func(time.Time) time.Time) (time.Time, bool) {
	r, err := natural().Parse(s, now)
	if err != nil || r == nil {
		return time.Time{}, false
	}
	if !strings.EqualFold(strings.TrimSpace(r.Text), strings.TrimSpace(s)) {
		return time.Time{}, false
	}
	t := r.Time.In(now.Location())
	if t.Hour() == now.Hour() && t.Minute() == now.Minute() && t.Second() == now.Second() {
		return dayClock(t), true
	}
	return t, true
}
