package gateway

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeConn records writes for assertions
type fakeConn struct {
	writes [][]byte
}

func (f *fakeConn) ReadMessage() ([]byte, error) { return nil, ErrConnClosed }
func (f *fakeConn) WriteMessage(data []byte) error {
	f.writes = append(f.writes, data)
	return nil
}
func (f *fakeConn) Close() error { return nil }

func lastResponse(t *testing.T, conn *fakeConn) WSResponse {
	t.Helper()
	assert.NotEmpty(t, conn.writes)
	var resp WSResponse
	assert.NoError(t, json.Unmarshal(conn.writes[len(conn.writes)-1], &resp))
	return resp
}

func TestHandleMessageInvalidJSON(t *testing.T) {
	conn := &fakeConn{}
	client := NewClient(conn, "u1", "token", "conn-1", nil)

	err := client.handleMessage([]byte("{not json"))
	assert.NoError(t, err)

	resp := lastResponse(t, conn)
	assert.Equal(t, 1, resp.ErrCode)
	assert.Equal(t, ErrInvalidProtocol.Error(), resp.ErrMsg)
}

func TestHandleMessageSenderMismatch(t *testing.T) {
	conn := &fakeConn{}
	client := NewClient(conn, "u1", "token", "conn-1", nil)

	req := WSRequest{
		ReqIdentifier: WSSendMsg,
		SendId:        "someone-else",
	}
	data, _ := json.Marshal(req)

	err := client.handleMessage(data)
	assert.NoError(t, err)

	resp := lastResponse(t, conn)
	assert.Equal(t, 1, resp.ErrCode)
	assert.Equal(t, ErrUserIdMismatch.Error(), resp.ErrMsg)
}

func TestHandleMessageUnknownIdentifier(t *testing.T) {
	conn := &fakeConn{}
	client := NewClient(conn, "u1", "token", "conn-1", nil)

	req := WSRequest{ReqIdentifier: 9999, SendId: "u1", MsgIncr: "1"}
	data, _ := json.Marshal(req)

	err := client.handleMessage(data)
	assert.NoError(t, err)

	resp := lastResponse(t, conn)
	assert.Equal(t, 1, resp.ErrCode)
	assert.Equal(t, "1", resp.MsgIncr)
}

func TestKickOnline(t *testing.T) {
	conn := &fakeConn{}
	client := NewClient(conn, "u1", "token", "conn-1", nil)

	assert.NoError(t, client.KickOnline())

	resp := lastResponse(t, conn)
	assert.Equal(t, int32(WSKickOnlineMsg), resp.ReqIdentifier)
	assert.True(t, client.IsClosed())
}

func TestWriteAfterClose(t *testing.T) {
	conn := &fakeConn{}
	client := NewClient(conn, "u1", "token", "conn-1", nil)

	assert.NoError(t, client.Close())
	assert.True(t, client.IsClosed())

	// Pushing to a closed client surfaces ErrConnClosed
	err := client.PushMessage(client.ctx, nil)
	assert.Equal(t, ErrConnClosed, err)
}
