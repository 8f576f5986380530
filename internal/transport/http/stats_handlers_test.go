package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sobachat/sobachat-server/internal/proto"
)

func fetchStats(t *testing.T, tsURL string, client *http.Client) map[string]int {
	t.Helper()

	resp, err := client.Get(tsURL + "/api/stats")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data proto.EventRoomStatsData
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&data))
	return data.Stats
}

func TestRoomsEndpointReturnsConfiguredOrder(t *testing.T) {
	ts := startTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/api/rooms")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rooms RoomsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rooms))
	require.Equal(t, []string{"General", "Random", "Tech"}, rooms.Rooms)
}

func TestStatsEndpointTracksOccupancy(t *testing.T) {
	ts := startTestServer(t)

	stats := fetchStats(t, ts.URL, ts.Client())
	require.Equal(t, map[string]int{"General": 0, "Random": 0, "Tech": 0}, stats)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialWS(t, ctx, ts)
	sendInbound(t, ctx, conn, proto.InboundTypeJoin, proto.JoinData{Username: "alice", Room: "Random"})
	readUntilEvent(t, ctx, conn, proto.EventRoomStats)

	stats = fetchStats(t, ts.URL, ts.Client())
	require.Equal(t, 1, stats["Random"])

	// Repeated reads with no mutation are identical.
	require.Equal(t, stats, fetchStats(t, ts.URL, ts.Client()))
}
