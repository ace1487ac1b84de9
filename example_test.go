package screener_test

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/screener"
	"github.com/aretw0/screener/pkg/agent"
	"github.com/aretw0/screener/pkg/domain"
	"github.com/aretw0/screener/pkg/speech"
)

// A scripted call: the console recognizer reads the answers from a string.
func ExampleNewCall() {
	answers := strings.NewReader("yes\n1 month\n8 lakh / 12 lakh\nFriday morning\nyes\n")
	call, err := screener.NewCall(
		domain.JobContext{Title: "Frontend Developer", Company: "Acme"},
		screener.WithSpeech(speech.Config{Mode: speech.ModeConsole, Input: answers}),
		screener.WithAgentOptions(
			agent.WithListenDelay(time.Millisecond),
			agent.WithClock(func() time.Time { return time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC) }),
		),
	)
	if err != nil {
		fmt.Println(err)
		return
	}

	done := make(chan domain.Update, 1)
	call.OnUpdate(func(u domain.Update) {
		if u.Completed || u.Failed {
			select {
			case done <- u:
			default:
			}
		}
	})
	if err := call.Start(context.Background()); err != nil {
		fmt.Println(err)
		return
	}

	final := <-done
	collected := call.Collected()
	fmt.Println("completed:", final.Completed)
	fmt.Println("notice:", collected[domain.FieldNoticePeriod])
	fmt.Println("interview:", collected[domain.FieldInterviewDate])
	fmt.Println("lines:", len(final.Transcript))
	// Output:
	// completed: true
	// notice: 1 month
	// interview: Friday, October 16, 2026 at 10:00 AM
	// lines: 11
}
