/*
Package screener runs recruiting screening calls: a fixed five-turn
conversation that checks a candidate's interest, notice period,
compensation and interview availability, then confirms the slot.

# Concept

The dialogue engine (pkg/dialogue) is a pure state machine over
utterances. The agent (pkg/agent) sequences speech around it: speak the
prompt, wait, listen, hand the utterance to the engine, repeat. Speech
recognition and synthesis are ports (pkg/ports) with console, command and
no-op adapters (pkg/speech), so the same call runs with a microphone, in a
terminal, or from a test.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/screener"
		"github.com/aretw0/screener/pkg/domain"
		"github.com/aretw0/screener/pkg/speech"
	)

	func main() {
		call, err := screener.NewCall(
			domain.JobContext{Title: "Frontend Developer", Company: "Acme"},
			screener.WithSpeech(speech.Config{Mode: speech.ModeConsole}),
		)
		if err != nil {
			log.Fatal(err)
		}

		done := make(chan struct{})
		call.OnUpdate(func(u domain.Update) {
			if u.Completed || u.Failed {
				close(done)
			}
		})

		if err := call.Start(context.Background()); err != nil {
			log.Fatal(err)
		}
		<-done
		fmt.Println(call.Collected())
	}
*/
package screener
