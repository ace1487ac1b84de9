/*
Package extract turns one free-text answer into one typed fact.

Every extractor is a pure function over the raw utterance. Matching is
case-insensitive and never looks at earlier turns. When nothing matches,
string extractors return domain.Unclear; boolean extractors fall back to a
fixed default (Interest to false, Confirmation to true).
*/
package extract
