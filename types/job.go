package types

// VideoJob is the input record for one video: an ordered list of segments
// with already-synthesized narration. It arrives from Kafka, the HTTP API,
// or a JSON file in the input directory.
type VideoJob struct {
	UUID     string    `json:"uuid"`
	Title    string    `json:"title,omitempty"`
	Status   string    `json:"status"`
	Segments []Segment `json:"segments"`
	Error    *string   `json:"error,omitempty"`
}
