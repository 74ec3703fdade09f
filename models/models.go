package models

type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type ChatResponse struct {
	Success        bool     `json:"success"`
	Reply          string   `json:"reply"`
	SessionID      string   `json:"session_id"`
	MessageType    string   `json:"message_type,omitempty"`
	Confidence     float64  `json:"confidence"`
	QuickReplies   []string `json:"quick_replies,omitempty"`
	ProcessingTime float64  `json:"processing_time"`
	Timestamp      string   `json:"timestamp"`
}

// ChatTurn is one persisted user/bot exchange within a session.
type ChatTurn struct {
	SessionID      string  `json:"session_id"`
	UserMessage    string  `json:"user_message"`
	BotReply       string  `json:"bot_reply"`
	MessageType    string  `json:"message_type"`
	Confidence     float64 `json:"confidence"`
	ProcessingTime float64 `json:"processing_time"`
	CreatedAt      string  `json:"created_at"`
}

type SoilConditions struct {
	PHRange   string `json:"ph_range"`
	Drainage  string `json:"drainage"`
	Nutrients string `json:"nutrients"`
	Depth     string `json:"depth"`
}

type WeatherConditions struct {
	Temperature string `json:"temperature"`
	Rainfall    string `json:"rainfall"`
	Humidity    string `json:"humidity"`
	Sunlight    string `json:"sunlight"`
}

// AnalysisResult is the classification payload the client renders.
// The disease block (disease..immediate_action) and the care block
// (care_tips..nutrition) are mutually exclusive by Status.
type AnalysisResult struct {
	Plant             string             `json:"plant"`
	ScientificName    string             `json:"scientific_name,omitempty"`
	Status            string             `json:"status"` // "Healthy" or "Diseased"
	Confidence        float64            `json:"confidence"`
	ConfidenceLevel   string             `json:"confidence_level,omitempty"`
	Disease           string             `json:"disease,omitempty"`
	Severity          string             `json:"severity,omitempty"`
	Symptoms          string             `json:"symptoms,omitempty"`
	Causes            string             `json:"causes,omitempty"`
	Treatments        string             `json:"treatments,omitempty"`
	Prevention        string             `json:"prevention,omitempty"`
	ImmediateAction   string             `json:"immediate_action,omitempty"`
	CareTips          string             `json:"care_tips,omitempty"`
	Harvesting        string             `json:"harvesting,omitempty"`
	Nutrition         string             `json:"nutrition,omitempty"`
	SoilConditions    *SoilConditions    `json:"soil_conditions,omitempty"`
	WeatherConditions *WeatherConditions `json:"weather_conditions,omitempty"`
	SuitableRegions   []string           `json:"suitable_regions,omitempty"`
	ModelVersion      string             `json:"model_version,omitempty"`
}

type Recommendation struct {
	Type        string `json:"type"`
	Priority    string `json:"priority"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type UploadResponse struct {
	Success         bool             `json:"success"`
	ResultID        string           `json:"result_id"`
	Result          *AnalysisResult  `json:"result"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
	ImageURL        string           `json:"image_url"`
	ProcessingTime  float64          `json:"processing_time"`
	Timestamp       string           `json:"timestamp"`
}

// AnalysisRecord is the persisted form of a completed analysis.
type AnalysisRecord struct {
	ID               string          `json:"id"`
	Filename         string          `json:"filename"`
	OriginalFilename string          `json:"original_filename"`
	FileSize         int64           `json:"file_size"`
	FileType         string          `json:"file_type"`
	PlantName        string          `json:"plant_name"`
	DiseaseName      string          `json:"disease_name,omitempty"`
	IsHealthy        bool            `json:"is_healthy"`
	Confidence       float64         `json:"confidence"`
	Severity         string          `json:"severity,omitempty"`
	Result           *AnalysisResult `json:"result"`
	ProcessingTime   float64         `json:"processing_time"`
	CreatedAt        string          `json:"created_at"`
}

// HistoryEntry is the trimmed view of an AnalysisRecord used by the
// recent-history listing.
type HistoryEntry struct {
	ID          string  `json:"id"`
	PlantName   string  `json:"plant_name"`
	DiseaseName string  `json:"disease_name,omitempty"`
	IsHealthy   bool    `json:"is_healthy"`
	Confidence  float64 `json:"confidence"`
	ImageURL    string  `json:"image_url"`
	CreatedAt   string  `json:"created_at"`
}

// SavedFile describes an upload persisted to the uploads directory.
type SavedFile struct {
	Filename         string `json:"filename"`
	Path             string `json:"path"`
	OriginalFilename string `json:"original_filename"`
	Size             int64  `json:"size"`
	Extension        string `json:"extension"`
}

type PlantSummary struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	ScientificName string   `json:"scientific_name"`
	Category       string   `json:"category"`
	Diseases       []string `json:"diseases"`
}
