package domain

// ProgressStage names a fixed checkpoint of the extraction pipeline
type ProgressStage string

const (
	StageEncoded          ProgressStage = "encoded"
	StageRequestSent      ProgressStage = "request_sent"
	StageResponseReceived ProgressStage = "response_received"
	StageParsed           ProgressStage = "parsed"
	StageComplete         ProgressStage = "complete"
)

// StagePercent maps each checkpoint to its reported percentage
var StagePercent = map[ProgressStage]int{
	StageEncoded:          10,
	StageRequestSent:      30,
	StageResponseReceived: 50,
	StageParsed:           80,
	StageComplete:         100,
}

// ProgressEvent is a single best-effort progress notification
type ProgressEvent struct {
	ExtractionID string        `json:"extractionId"`
	Stage        ProgressStage `json:"stage"`
	Percent      int           `json:"percent"`
}
