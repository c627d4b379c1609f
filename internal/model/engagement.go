package model

// MaxRecent is the maximum length of the recently viewed list.
const MaxRecent = 5

// Popularity maps a contact ID to the number of search hits it has received.
type Popularity map[string]int

// Recency is the list of recently viewed contact IDs, most recent first.
type Recency []string
