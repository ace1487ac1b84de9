/*
Package agent runs the speak, listen, interpret loop of a screening call.

An Agent owns one dialogue.Engine and drives it against a ports.Recognizer
and a ports.Synthesizer:

	Start ──speak prompt──► wait listen delay ──► Recognizer.Start
	  ▲                                                │
	  └──speak next prompt◄── SubmitUtterance ◄──result┘

Recognized speech and typed text both enter through SubmitUtterance.
Recognition errors stop listening and reopen it after a backoff delay; after
RetryPolicy.MaxAttempts consecutive failures the session is marked failed.

Every state change is pushed to the function registered with OnUpdate.
*/
package agent
