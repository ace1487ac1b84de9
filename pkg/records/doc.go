// Package records is the back-office service for jobs, candidates and
// appointments. It assigns IDs, validates input, seeds sample data and
// writes screening outcomes back onto the records.
package records
