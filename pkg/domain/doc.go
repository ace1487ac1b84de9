/*
Package domain contains the core models of the screening call.

It describes what a conversation is (a job to screen for, a step cursor, the
facts collected so far and the transcript) and the records the recruiting
back office keeps (jobs, candidates, appointments). The package is free of
I/O so the dialogue core can be tested in isolation.

# Key Entities

  - JobContext: the role and company a conversation is about. Fixed for the life of a conversation.
  - Step: the cursor into the fixed question sequence. Values above StepConfirmation mean the call is closed.
  - DialogueState: the single mutable record of one conversation.
  - Update: the snapshot pushed to observers after every state change.
  - Job, Candidate, Appointment: CRUD records handled through ports.RecordStore.
*/
package domain
