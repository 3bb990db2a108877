/*
Package api
File: handlers.go
Description:
    The HTTP surface of the simulation. Server wraps one game session and
    the websocket hub; every handler translates between JSON and session
    calls, and day advances are pushed to connected clients as a
    'day_pulse' broadcast.
*/

package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/everforgeworks/streets-heat-index/internal/game"
)

// Server holds the session the handlers operate on.
type Server struct {
	session *game.Session
	hub     *Hub
}

// NewServer wires a session and hub into an HTTP handler set.
func NewServer(session *game.Session, hub *Hub) *Server {
	return &Server{session: session, hub: hub}
}

// Routes registers every endpoint on a fresh mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/regions", s.handleRegions)
	mux.HandleFunc("/api/market", s.handleMarket)
	mux.HandleFunc("/api/player", s.handlePlayer)
	mux.HandleFunc("/api/events", s.handleEvents)
	mux.HandleFunc("/api/trends", s.handleTrends)
	mux.HandleFunc("/api/buy", s.handleBuy)
	mux.HandleFunc("/api/sell", s.handleSell)
	mux.HandleFunc("/api/travel", s.handleTravel)
	mux.HandleFunc("/api/day/advance", s.handleAdvanceDay)
	mux.HandleFunc("/api/deal/respond", s.handleDealRespond)
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		ServeWs(s.hub, w, r)
	})
	return mux
}

// --- DTOs ---

type regionInfo struct {
	Key          string   `json:"key"`
	Name         string   `json:"name"`
	Heat         int      `json:"heat"`
	Day          int      `json:"day"`
	ActiveEvents []string `json:"active_events"`
}

type marketQuote struct {
	Drug      string  `json:"drug"`
	Quality   string  `json:"quality"`
	BuyPrice  float64 `json:"buy_price"`
	SellPrice float64 `json:"sell_price"`
	Stock     int     `json:"stock"`
}

type eventInfo struct {
	game.MarketEvent
	Description string `json:"description"`
}

type tradeRequest struct {
	Region   string `json:"region"`
	Drug     string `json:"drug"`
	Quality  string `json:"quality"`
	Quantity int    `json:"quantity"`
}

type travelRequest struct {
	Region string `json:"region"`
}

type dealRequest struct {
	Region  string `json:"region"`
	EventID string `json:"event_id"`
	Accept  bool   `json:"accept"`
}

// --- Handlers ---

func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	day := s.session.CurrentDay()
	summaries := s.session.RegionList()
	out := make([]regionInfo, 0, len(summaries))
	for _, rs := range summaries {
		out = append(out, regionInfo{Key: rs.Key, Name: rs.Name, Heat: rs.Heat, Day: day, ActiveEvents: rs.ActiveEvents})
	}
	writeJSON(w, out)
}

func (s *Server) handleMarket(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	regionKey := r.URL.Query().Get("region")
	if regionKey == "" {
		http.Error(w, "Missing 'region' query parameter", http.StatusBadRequest)
		return
	}
	snapshot, err := s.session.MarketSnapshot(regionKey)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	quotes := make([]marketQuote, 0, len(snapshot))
	for _, q := range snapshot {
		quotes = append(quotes, marketQuote{
			Drug:      q.Drug,
			Quality:   q.Quality,
			BuyPrice:  q.BuyPrice,
			SellPrice: q.SellPrice,
			Stock:     q.Stock,
		})
	}
	writeJSON(w, quotes)
}

func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, s.session.PlayerSnapshot())
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	regionKey := r.URL.Query().Get("region")
	if regionKey == "" {
		http.Error(w, "Missing 'region' query parameter", http.StatusBadRequest)
		return
	}
	events := s.session.ActiveEvents(regionKey)
	out := make([]eventInfo, 0, len(events))
	for i := range events {
		out = append(out, eventInfo{MarketEvent: events[i], Description: events[i].Describe()})
	}
	writeJSON(w, out)
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	regionKey := r.URL.Query().Get("region")
	if regionKey == "" {
		http.Error(w, "Missing 'region' query parameter", http.StatusBadRequest)
		return
	}
	trends, err := s.session.MarketTrends(regionKey)
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	writeJSON(w, trends)
}

func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeTrade(w, r)
	if !ok {
		return
	}
	receipt, err := s.session.BuyDrug(req.Region, req.Drug, game.ParseQuality(req.Quality), req.Quantity)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, receipt)
}

func (s *Server) handleSell(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeTrade(w, r)
	if !ok {
		return
	}
	receipt, err := s.session.SellDrug(req.Region, req.Drug, game.ParseQuality(req.Quality), req.Quantity)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, receipt)
}

func (s *Server) handleTravel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req travelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if err := s.session.Travel(req.Region); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, s.session.PlayerSnapshot())
}

func (s *Server) handleAdvanceDay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	report := s.session.AdvanceDay()
	s.broadcastDayPulse(report)
	writeJSON(w, report)
}

func (s *Server) handleDealRespond(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	receipt, err := s.session.RespondToSetup(req.Region, req.EventID, req.Accept)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if receipt == nil {
		writeJSON(w, map[string]string{"status": "declined"})
		return
	}
	writeJSON(w, receipt)
}

// broadcastDayPulse pushes a day report to every websocket client.
func (s *Server) broadcastDayPulse(report *game.DayReport) {
	if s.hub == nil {
		return
	}
	data, err := json.Marshal(Message{Type: "day_pulse", Payload: report})
	if err != nil {
		log.Printf("Failed to marshal day pulse: %v", err)
		return
	}
	s.hub.Broadcast <- data
}

// --- Helpers ---

func decodeTrade(w http.ResponseWriter, r *http.Request) (tradeRequest, bool) {
	var req tradeRequest
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return req, false
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
