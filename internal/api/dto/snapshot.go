package dto

type StopRequest struct {
	ID        string   `json:"id"`
	StoreID   string   `json:"store_id"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Sequence  int      `json:"sequence"`
	Status    string   `json:"status"`
	Lat       *float64 `json:"lat"`
	Lng       *float64 `json:"lng"`
	ItemCount int      `json:"item_count"`
}

type StartRequest struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Name string  `json:"name"`
}

type RenderRequest struct {
	SessionID string        `json:"session_id"`
	Stops     []StopRequest `json:"stops"`
	Start     *StartRequest `json:"start"`
}
