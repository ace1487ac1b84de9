/*
Package dialogue implements the screening conversation as a step-indexed state machine.

The Engine owns one domain.DialogueState. Each call to Process consumes a
single utterance: it records it, runs the extractor for the current step,
decides whether the answer needs to be asked again, advances the cursor
and records the next agent line.

# Steps

	0  interest       extract.Interest        never re-asked
	1  notice period  extract.NoticePeriod    re-asked when unclear
	2  compensation   extract.Compensation    re-asked when both amounts are unclear
	3  availability   extract.InterviewDate   re-asked when unclear
	4  confirmation   extract.Confirmation    never re-asked
	5+ closed

The Engine is not safe for concurrent use; the agent package serializes access.
*/
package dialogue
