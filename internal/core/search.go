package core

// Search returns the first course whose ID equals id exactly.
func Search(courses []Course, id string) (Course, bool) {
	for _, c := range courses {
		if c.ID == id {
			return c, true
		}
	}
	return Course{}, false
}
