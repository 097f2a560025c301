package handler

import (
	"errors"
	"icequeen"
	"icequeen/app/middleware"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminHandler(t *testing.T) {

	app := newTestApp()
	mock := &RefresherMock{}
	NewAdminHandler(mock, middleware.JWTGuard(testJwtKey)).InitRoute(app)

	t.Run("인증 헤더 누락", func(t *testing.T) {
		code, _, err := sendReqeust(app, "/admin/refresh", "POST", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, code)
		assert.Equal(t, 0, mock.calls)
	})

	t.Run("다른 key로 서명", func(t *testing.T) {
		token, err := middleware.SignToken("other-key", "test", time.Minute)
		require.NoError(t, err)

		code, _, err := sendReqeust(app, "/admin/refresh", "POST", nil, nil, "Bearer "+token)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, code)
	})

	t.Run("만료 token", func(t *testing.T) {
		token, err := middleware.SignToken(testJwtKey, "test", -time.Minute)
		require.NoError(t, err)

		code, _, err := sendReqeust(app, "/admin/refresh", "POST", nil, nil, "Bearer "+token)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, code)
	})

	t.Run("refresh 성공", func(t *testing.T) {
		code, raw, err := sendReqeust(app, "/admin/refresh", "POST", nil, nil, bearer(t))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, code)
		assert.Equal(t, "Refresh 성공", string(raw))
		assert.Equal(t, 1, mock.calls)
	})

	t.Run("refresh 실패", func(t *testing.T) {
		mock.err = errors.New("rpc down")
		defer func() { mock.err = nil }()

		code, raw, err := sendReqeust(app, "/admin/refresh", "POST", nil, nil, bearer(t))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, code)
		assert.Contains(t, string(raw), "rpc down")
	})
}

func TestAdminDisabled(t *testing.T) {
	app := newTestApp()
	mock := &RefresherMock{}
	NewAdminHandler(mock, middleware.JWTGuard("")).InitRoute(app)

	code, _, err := sendReqeust(app, "/admin/refresh", "POST", nil, nil, bearer(t))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, code)
	assert.Equal(t, 0, mock.calls)
}

func TestEventHandler(t *testing.T) {

	app := newTestApp()
	mock := &EventMock{events: []*icequeen.EnrolledEvent{
		{Id: 1, Title: "Staking position 갱신", IsActive: true},
		{Id: 2, Title: "Staking 일일 리포트", IsActive: true},
	}}
	NewEventHandler(mock, mock, mock, middleware.JWTGuard(testJwtKey)).InitRoute(app)

	t.Run("목록 조회", func(t *testing.T) {
		var resp []EventResponse
		code, _, err := sendReqeust(app, "/events", "GET", nil, &resp)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, code)
		assert.Len(t, resp, 2)
	})

	t.Run("실행 인증 필요", func(t *testing.T) {
		code, _, err := sendReqeust(app, "/events/launch", "POST", EventLaunchRequest{Id: 1}, nil)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, code)
		assert.Empty(t, mock.launched)
	})

	t.Run("실행", func(t *testing.T) {
		code, _, err := sendReqeust(app, "/events/launch", "POST", EventLaunchRequest{Id: 2}, nil, bearer(t))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, code)
		assert.Equal(t, []uint{2}, mock.launched)
	})

	t.Run("상태 변경", func(t *testing.T) {
		code, _, err := sendReqeust(app, "/events/switch", "POST", EventStatusChangeRequest{Id: 1, Active: false}, nil, bearer(t))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, code)
		assert.False(t, mock.events[0].IsActive)
		mock.prettyPrint()
	})

	t.Run("중지된 job 실행", func(t *testing.T) {
		code, _, err := sendReqeust(app, "/events/launch", "POST", EventLaunchRequest{Id: 1}, nil, bearer(t))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusConflict, code)
		assert.Equal(t, []uint{2}, mock.launched)
	})

	t.Run("재개", func(t *testing.T) {
		code, raw, err := sendReqeust(app, "/events/switch", "POST", EventStatusChangeRequest{Id: 1, Active: true}, nil, bearer(t))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, code)
		assert.Equal(t, "job 1 스케줄 재개", string(raw))
	})

	t.Run("미존재 Id", func(t *testing.T) {
		code, _, err := sendReqeust(app, "/events/switch", "POST", EventStatusChangeRequest{Id: 9, Active: true}, nil, bearer(t))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, code)

		code, _, err = sendReqeust(app, "/events/launch", "POST", EventLaunchRequest{Id: 9}, nil, bearer(t))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, code)
	})
}
