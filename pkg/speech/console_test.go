package speech_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/screener/pkg/ports"
	"github.com/aretw0/screener/pkg/speech"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type outcome struct {
	text string
	err  error
}

func capture(rec ports.Recognizer) chan outcome {
	ch := make(chan outcome, 8)
	rec.SetHandler(ports.RecognitionHandler{
		OnResult: func(text string) { ch <- outcome{text: text} },
		OnError:  func(err error) { ch <- outcome{err: err} },
	})
	return ch
}

func await(t *testing.T, ch chan outcome) outcome {
	t.Helper()
	select {
	case o := <-ch:
		return o
	case <-time.After(time.Second):
		t.Fatal("no recognition outcome")
		return outcome{}
	}
}

func TestConsoleRecognizer_OneLinePerWindow(t *testing.T) {
	rec := speech.NewConsoleRecognizer(strings.NewReader("yes\n\n  1 month  \n"))
	ch := capture(rec)

	require.NoError(t, rec.Start())
	assert.Equal(t, "yes", await(t, ch).text)

	require.NoError(t, rec.Start())
	assert.Equal(t, "1 month", await(t, ch).text, "blank lines are skipped")

	require.NoError(t, rec.Start())
	assert.ErrorIs(t, await(t, ch).err, ports.ErrRecognizerClosed)

	assert.ErrorIs(t, rec.Start(), ports.ErrRecognizerClosed)
}

func TestConsoleRecognizer_LastLineWithoutNewline(t *testing.T) {
	rec := speech.NewConsoleRecognizer(strings.NewReader("Friday"))
	ch := capture(rec)

	require.NoError(t, rec.Start())
	assert.Equal(t, "Friday", await(t, ch).text)
}

func TestConsoleRecognizer_StopKeepsLine(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	rec := speech.NewConsoleRecognizer(pr)
	ch := capture(rec)

	require.NoError(t, rec.Start())
	rec.Stop()
	rec.Stop()

	go func() { _, _ = pw.Write([]byte("typed while closed\n")) }()
	select {
	case o := <-ch:
		t.Fatalf("delivered while stopped: %+v", o)
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, rec.Start())
	assert.Equal(t, "typed while closed", await(t, ch).text)
}

func TestConsoleRecognizer_ReadError(t *testing.T) {
	boom := errors.New("tty gone")
	pr, pw := io.Pipe()
	rec := speech.NewConsoleRecognizer(pr)
	ch := capture(rec)

	require.NoError(t, rec.Start())
	pw.CloseWithError(boom)
	assert.ErrorIs(t, await(t, ch).err, boom)
}

func TestConsoleSynthesizer_PrintsAndCallsHooks(t *testing.T) {
	var out bytes.Buffer
	var events []string
	synth := speech.NewConsoleSynthesizer(speech.WithOutput(&out))
	synth.SetHooks(ports.SpeechHooks{
		OnStart: func(text string) { events = append(events, "start:"+text) },
		OnEnd:   func(text string) { events = append(events, "end:"+text) },
	})

	require.NoError(t, synth.Speak(context.Background(), "Hello"))
	assert.Equal(t, "Agent: Hello\n", out.String())
	assert.Equal(t, []string{"start:Hello", "end:Hello"}, events)
}

func TestConsoleSynthesizer_Cancel(t *testing.T) {
	// One word per minute keeps Speak busy until cancelled.
	synth := speech.NewConsoleSynthesizer(speech.WithWordsPerMinute(1))

	done := make(chan error, 1)
	go func() { done <- synth.Speak(context.Background(), "a long sentence") }()

	require.Eventually(t, func() bool {
		synth.Cancel()
		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
			return true
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}

func TestConsoleSynthesizer_ContextDone(t *testing.T) {
	synth := speech.NewConsoleSynthesizer(speech.WithWordsPerMinute(1))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, synth.Speak(ctx, "hello there"), context.DeadlineExceeded)
}

func TestSpeakingTime(t *testing.T) {
	assert.Equal(t, time.Duration(0), speech.SpeakingTime("one two", 0))
	assert.Equal(t, time.Second, speech.SpeakingTime("one two three", 180))
	assert.Equal(t, time.Duration(0), speech.SpeakingTime("   ", 180))
}
