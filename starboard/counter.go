package starboard

// CountReactors returns the number of distinct users across both reactor
// lists. A user who reacted on the source and on the mirrored post counts
// once; double counting would promote messages early and churn edits.
// IDs listed in exclude (the bot's own) are not counted.
func CountReactors(sourceReactors, postReactors []string, exclude ...string) int {
	seen := make(map[string]bool, len(sourceReactors)+len(postReactors))
	for _, id := range sourceReactors {
		seen[id] = true
	}
	for _, id := range postReactors {
		seen[id] = true
	}
	for _, id := range exclude {
		delete(seen, id)
	}
	return len(seen)
}
