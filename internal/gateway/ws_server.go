package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"

	"github.com/alumnet/reunion/internal/config"
	"github.com/alumnet/reunion/internal/entity"
	"github.com/alumnet/reunion/internal/service"
	"github.com/alumnet/reunion/pkg/errcode"
	"github.com/alumnet/reunion/pkg/jwt"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mbeoliero/kit/log"
	"github.com/redis/go-redis/v9"
)

// WsServer is the WebSocket server
type WsServer struct {
	upgrader        *websocket.Upgrader
	cfg             *config.Config
	userMap         *UserMap
	registerChan    chan *Client
	unregisterChan  chan *Client
	pushChan        chan *PushTask
	msgService      *service.MessageService
	convService     *service.ConversationService
	presenceService *service.PresenceService
	authService     *service.AuthService
	onlineUserNum   atomic.Int64
	onlineConnNum   atomic.Int64
	maxConnNum      int64
}

// PushTask represents a message push task
type PushTask struct {
	Msg       *entity.MessageInfo
	TargetIds []string
	ExcludeId string // Exclude specific connection Id
}

// NewWsServer creates a new WebSocket server
func NewWsServer(cfg *config.Config, rdb *redis.Client,
	msgService *service.MessageService,
	convService *service.ConversationService,
	presenceService *service.PresenceService,
	authService *service.AuthService) *WsServer {

	upgrader := &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}

	return &WsServer{
		upgrader:        upgrader,
		cfg:             cfg,
		userMap:         NewUserMap(rdb),
		registerChan:    make(chan *Client, 1000),
		unregisterChan:  make(chan *Client, 1000),
		pushChan:        make(chan *PushTask, cfg.WebSocket.PushChannelSize),
		msgService:      msgService,
		convService:     convService,
		presenceService: presenceService,
		authService:     authService,
		maxConnNum:      cfg.WebSocket.MaxConnNum,
	}
}

// Run starts the WebSocket server
func (s *WsServer) Run(ctx context.Context) {
	go s.eventLoop(ctx)

	workerNum := s.cfg.WebSocket.PushWorkerNum
	if workerNum <= 0 {
		workerNum = 10
	}
	for i := 0; i < workerNum; i++ {
		go s.pushLoop(ctx)
	}
	log.Info("started %d push workers", workerNum)
}

// eventLoop handles client registration and unregistration
func (s *WsServer) eventLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-s.registerChan:
			s.registerClient(ctx, client)
		case client := <-s.unregisterChan:
			s.unregisterClient(ctx, client)
		}
	}
}

// pushLoop handles async message pushing
func (s *WsServer) pushLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case task := <-s.pushChan:
			s.processPushTask(ctx, task)
		}
	}
}

// processPushTask processes a single push task
func (s *WsServer) processPushTask(ctx context.Context, task *PushTask) {
	for _, userId := range task.TargetIds {
		clients, ok := s.userMap.GetAll(userId)
		if !ok {
			continue
		}

		for _, client := range clients {
			if task.ExcludeId != "" && client.ConnId == task.ExcludeId {
				continue
			}

			if err := client.PushMessage(ctx, task.Msg); err != nil {
				log.CtxDebug(ctx, "push to client failed: user_id=%s, conn_id=%s, error=%v",
					userId, client.ConnId, err)
			}
		}
	}
}

// registerClient registers a client; a user's first connection marks
// them online in presence.
func (s *WsServer) registerClient(ctx context.Context, client *Client) {
	first := s.userMap.Register(ctx, client)
	if first {
		s.onlineUserNum.Add(1)
	}
	s.onlineConnNum.Add(1)

	_ = s.presenceService.Heartbeat(ctx, client.UserId)

	log.CtxInfo(ctx, "client registered: user_id=%s, conn_id=%s, first_conn=%v, online_users=%d, online_conns=%d",
		client.UserId, client.ConnId, first, s.onlineUserNum.Load(), s.onlineConnNum.Load())
}

// unregisterClient unregisters a client; the user's last connection
// closing marks them offline.
func (s *WsServer) unregisterClient(ctx context.Context, client *Client) {
	isUserOffline := s.userMap.Unregister(ctx, client)
	s.onlineConnNum.Add(-1)

	if isUserOffline {
		s.onlineUserNum.Add(-1)
		_ = s.presenceService.Offline(ctx, client.UserId)
	}

	log.CtxInfo(ctx, "client unregistered: user_id=%s, conn_id=%s, user_offline=%v, online_users=%d, online_conns=%d",
		client.UserId, client.ConnId, isUserOffline, s.onlineUserNum.Load(), s.onlineConnNum.Load())
}

// UnregisterClient queues client for unregistration
func (s *WsServer) UnregisterClient(client *Client) {
	select {
	case s.unregisterChan <- client:
	default:
		log.Warn("unregister channel full: user_id=%s", client.UserId)
	}
}

// connOptions builds per-connection settings from the config
func (s *WsServer) connOptions() ConnOptions {
	ws := s.cfg.WebSocket
	return ConnOptions{
		MaxMessageSize:   ws.MaxMessageSize,
		WriteWait:        ws.WriteWait,
		PongWait:         ws.PongWait,
		PingPeriod:       ws.PingPeriod,
		WriteChannelSize: ws.WriteChannelSize,
	}
}

// onPong feeds pong frames into presence and the redis online key
func (s *WsServer) onPong(userId string) func() {
	return func() {
		ctx := context.Background()
		s.userMap.RefreshOnlineStatus(ctx, userId)
		_ = s.presenceService.Heartbeat(ctx, userId)
	}
}

// authenticate validates the query token against the claimed sender
func (s *WsServer) authenticate(ctx context.Context, token, sendId string) (*jwt.Claims, error) {
	claims, err := s.authService.VerifyToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if claims.UserId != sendId {
		return nil, errcode.ErrTokenInvalid
	}
	return claims, nil
}

// HandleConnection handles a new WebSocket connection on the raw
// net/http path.
func (s *WsServer) HandleConnection(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if s.onlineConnNum.Load() >= s.maxConnNum {
		http.Error(w, "connection limit exceeded", http.StatusServiceUnavailable)
		return
	}

	token := r.URL.Query().Get(QueryToken)
	sendId := r.URL.Query().Get(QuerySendId)

	if token == "" || sendId == "" {
		http.Error(w, "missing required parameters", http.StatusBadRequest)
		return
	}

	claims, err := s.authenticate(ctx, token, sendId)
	if err != nil {
		log.CtxDebug(ctx, "token validation failed: send_id=%s, error=%v", sendId, err)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.CtxWarn(ctx, "websocket upgrade failed: %v", err)
		return
	}

	connId := uuid.New().String()
	wsConn := NewWebSocketClientConn(conn, s.connOptions(), s.onPong(claims.UserId))
	client := NewClient(wsConn, claims.UserId, token, connId, s)

	s.registerChan <- client
	client.Start()
}

// AsyncPushToUsers queues a message push to users.
// Implements service.MessagePusher.
func (s *WsServer) AsyncPushToUsers(msg *entity.MessageInfo, userIds []string, excludeConnId string) {
	task := &PushTask{
		Msg:       msg,
		TargetIds: userIds,
		ExcludeId: excludeConnId,
	}

	select {
	case s.pushChan <- task:
	default:
		log.Warn("push channel full, message dropped: conversation_id=%s, msg_id=%d",
			msg.ConversationId, msg.Id)
	}
}

// KickUser closes every connection the user holds on this instance.
// Implements service.SessionKicker.
func (s *WsServer) KickUser(userId string) {
	clients, ok := s.userMap.GetAll(userId)
	if !ok {
		return
	}
	for _, client := range clients {
		if err := client.KickOnline(); err != nil {
			log.Warn("kick client failed: user_id=%s, conn_id=%s, error=%v",
				userId, client.ConnId, err)
		}
	}
}

// GetOnlineUserCount returns online user count
func (s *WsServer) GetOnlineUserCount() int64 {
	return s.onlineUserNum.Load()
}

// GetOnlineConnCount returns online connection count
func (s *WsServer) GetOnlineConnCount() int64 {
	return s.onlineConnNum.Load()
}

// ========== Message Handlers ==========

// HandleSendMsg handles send message request
func (s *WsServer) HandleSendMsg(ctx context.Context, client *Client, req *WSRequest) ([]byte, error) {
	var sendReq SendMsgReq
	if err := json.Unmarshal(req.Data, &sendReq); err != nil {
		return nil, errcode.ErrInvalidParam
	}

	svcReq := &service.SendMessageRequest{
		ConversationId: sendReq.ConversationId,
		Content:        sendReq.Content,
		MessageType:    sendReq.MessageType,
		MediaUrl:       sendReq.MediaUrl,
	}

	info, err := s.msgService.SendMessage(ctx, client.UserId, svcReq)
	if err != nil {
		return nil, err
	}

	return json.Marshal(info)
}

// HandlePullMsg handles pull messages request
func (s *WsServer) HandlePullMsg(ctx context.Context, client *Client, req *WSRequest) ([]byte, error) {
	var pullReq PullMsgReq
	if err := json.Unmarshal(req.Data, &pullReq); err != nil {
		return nil, errcode.ErrInvalidParam
	}

	messages, err := s.msgService.ListMessages(ctx, client.UserId, pullReq.ConversationId, pullReq.Limit)
	if err != nil {
		return nil, err
	}

	resp := PullMsgResp{Messages: messages}
	return json.Marshal(resp)
}

// HandleMarkRead handles mark read request
func (s *WsServer) HandleMarkRead(ctx context.Context, client *Client, req *WSRequest) ([]byte, error) {
	var markReq MarkReadReq
	if err := json.Unmarshal(req.Data, &markReq); err != nil {
		return nil, errcode.ErrInvalidParam
	}

	if err := s.convService.MarkRead(ctx, client.UserId, markReq.ConversationId); err != nil {
		return nil, err
	}
	return nil, nil
}

// HandleGetUnread handles total unread count request
func (s *WsServer) HandleGetUnread(ctx context.Context, client *Client, req *WSRequest) ([]byte, error) {
	total, err := s.msgService.UnreadTotal(ctx, client.UserId)
	if err != nil {
		return nil, err
	}

	resp := GetUnreadResp{Total: total}
	return json.Marshal(resp)
}
