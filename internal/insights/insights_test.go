package insights

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/config"
	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/game"
)

func intPtr(n int) *int { return &n }

func sampleGame() GameData {
	info := game.Info{
		GameDate:       "2025-07-12",
		HomeTeam:       "Chicago Cubs",
		AwayTeam:       "Milwaukee Brewers",
		HomeScore:      intPtr(3),
		AwayScore:      intPtr(6),
		WinningPitcher: "Freddy Peralta",
		LosingPitcher:  "Jameson Taillon",
		SavePitcher:    "Trevor Megill",
		Venue:          "Wrigley Field",
	}
	info.Decide()

	return GameData{
		Info: info,
		Batting: []game.BattingLine{
			{Player: "Christian Yelich", Team: "MIL", AB: 4, H: 3, RBI: 2},
			{Player: "Jackson Chourio", Team: "MIL", AB: 5, H: 2, RBI: 3, HR: 1},
			{Player: "Ian Happ", Team: "CHC", AB: 4, H: 0, SO: 3},
		},
		Pitching: []game.PitchingLine{
			{Player: "Freddy Peralta", Team: "MIL", IP: "6.2", ER: 3, SO: 8, BB: 2},
			{Player: "Trevor Megill", Team: "MIL", IP: "1.0", ER: 0, SO: 2},
			{Player: "Jameson Taillon", Team: "CHC", IP: "5.1", ER: 5, SO: 4, BB: 4},
		},
		Odds: []game.OddsLine{
			{Bookmaker: "draftkings", Market: game.MarketMoneyline, Side: "home", Price: 2.1},
			{Bookmaker: "draftkings", Market: game.MarketMoneyline, Side: "away", Price: 1.76},
		},
	}
}

func TestLocalGenerate(t *testing.T) {
	n, err := NewLocal().Generate(sampleGame())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if n.Source != "local" {
		t.Errorf("Source = %s, want local", n.Source)
	}
	if n.GameDate != "2025-07-12" || n.HomeTeam != "Chicago Cubs" {
		t.Errorf("Envelope = %s/%s, want 2025-07-12/Chicago Cubs", n.GameDate, n.HomeTeam)
	}

	wantFragments := []string{
		"Milwaukee Brewers defeated the Chicago Cubs 6-3",
		"Freddy Peralta took the win",
		"Trevor Megill earning the save",
		"Christian Yelich (MIL) had a big day at the plate with 3 hits",
		"Jackson Chourio (MIL) homered once",
		"Freddy Peralta (MIL) pitched 6.2 innings",
		"A strong outing",
		"Ian Happ (CHC) struck out 3 times",
		"Jameson Taillon (CHC) struggled with control, walking 4",
	}
	for _, frag := range wantFragments {
		if !strings.Contains(n.Notes, frag) {
			t.Errorf("Notes missing fragment %q\nNotes: %s", frag, n.Notes)
		}
	}
}

func TestLocalGenerateDecisiveAndClose(t *testing.T) {
	data := sampleGame()
	n, _ := NewLocal().Generate(data)
	if strings.Contains(n.Notes, "decisive victory") {
		t.Error("A 3-run game should not read as decisive")
	}

	data.Info.AwayScore = intPtr(9)
	data.Info.Decide()
	n, _ = NewLocal().Generate(data)
	if !strings.Contains(n.Notes, "decisive victory") {
		t.Error("A 6-run game should read as decisive")
	}

	data.Info.AwayScore = intPtr(4)
	data.Info.Decide()
	n, _ = NewLocal().Generate(data)
	if !strings.Contains(n.Notes, "close contest") {
		t.Error("A 1-run game should read as a close contest")
	}
}

func TestLocalGenerateEmptyGame(t *testing.T) {
	n, err := NewLocal().Generate(GameData{Info: game.Info{GameDate: "2025-07-12"}})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if n.Notes != "No notable statistics available for this game." {
		t.Errorf("Notes = %q", n.Notes)
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(sampleGame())

	wantLines := []string{
		"Game: Milwaukee Brewers at Chicago Cubs (2025-07-12)",
		"Final: Milwaukee Brewers 6, Chicago Cubs 3",
		"Decisions: W Freddy Peralta, L Jameson Taillon, SV Trevor Megill",
		"Venue: Wrigley Field",
		"Batter: Christian Yelich (MIL) 3-for-4, 2 RBI, 0 HR",
		"Pitcher: Freddy Peralta (MIL) 6.2 IP, 3 ER, 8 SO, 2 BB",
		"Closing moneyline (draftkings): home 2.10, away 1.76",
	}
	for _, line := range wantLines {
		if !strings.Contains(prompt, line) {
			t.Errorf("Prompt missing line %q\nPrompt:\n%s", line, prompt)
		}
	}

	// Short relief appearances stay out of the prompt.
	if strings.Contains(prompt, "Trevor Megill (MIL) 1.0 IP") {
		t.Error("Prompt should only include starters with 4+ innings")
	}
}

func TestLLMGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %s, want Bearer test-key", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.Model != "gpt-4o-mini" {
			t.Errorf("Model = %s, want gpt-4o-mini", req.Model)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("Expected system + user messages, got %+v", req.Messages)
		}
		if !strings.Contains(req.Messages[1].Content, "Milwaukee Brewers at Chicago Cubs") {
			t.Error("User message is missing the game facts")
		}

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "The Brewers won 6-3."}},
			},
		})
	}))
	defer server.Close()

	gen := NewLLM(config.Insights{
		APIKey:    "test-key",
		BaseURL:   server.URL,
		Model:     "gpt-4o-mini",
		MaxTokens: 400,
	})

	n, err := gen.Generate(sampleGame())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if n.Source != "llm" {
		t.Errorf("Source = %s, want llm", n.Source)
	}
	if n.Notes != "The Brewers won 6-3." {
		t.Errorf("Notes = %q", n.Notes)
	}
}

func TestLLMGenerateAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "rate limit exceeded"},
		})
	}))
	defer server.Close()

	gen := NewLLM(config.Insights{APIKey: "test-key", BaseURL: server.URL, Model: "gpt-4o-mini"})
	_, err := gen.Generate(sampleGame())
	if err == nil {
		t.Fatal("Expected error for 429 response, got nil")
	}
	if !strings.Contains(err.Error(), "rate limit exceeded") {
		t.Errorf("Error should carry the API message, got: %v", err)
	}
}

func TestForConfig(t *testing.T) {
	if _, ok := ForConfig(config.Insights{APIKey: "k"}).(*LLM); !ok {
		t.Error("Expected LLM generator when an API key is set")
	}
	if _, ok := ForConfig(config.Insights{}).(*Local); !ok {
		t.Error("Expected local generator without an API key")
	}
}
