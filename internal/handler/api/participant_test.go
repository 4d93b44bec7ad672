package api_test

import (
	"errors"
	"net/http"
	"testing"

	"course-checkout/internal/handler/api"
	resdto "course-checkout/internal/handler/dto/response"
	"course-checkout/internal/testutil/httptest"
	commandsmock "course-checkout/internal/testutil/mock/commands"
	"course-checkout/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ParticipantHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockParticipantCommands
}

func (s *ParticipantHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockParticipantCommands(s.mockCtrl)
	s.router.POST("/api/admin/participants/:orderNumber/cancel", fakeAuth(true), api.NewParticipantHandler(s.mockCommands).Cancel)
}

func (s *ParticipantHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestParticipantHandlerSuite(t *testing.T) {
	suite.Run(t, new(ParticipantHandlerTestSuite))
}

func (s *ParticipantHandlerTestSuite) TestCancel() {
	url := "/api/admin/participants/ORD-000007/cancel"

	s.Run("success: participant cancelled", func() {
		s.mockCommands.EXPECT().CancelParticipant(gomock.Any(), "ORD-000007").
			Return(&commands.CancelParticipantResult{OrderNumber: "ORD-000007", Cancelled: true}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "admin-token")

		var body resdto.ParticipantCancelResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("ORD-000007", body.OrderNumber)
		s.True(body.Cancelled)
	})

	s.Run("success: second cancel reports no change", func() {
		s.mockCommands.EXPECT().CancelParticipant(gomock.Any(), "ORD-000007").
			Return(&commands.CancelParticipantResult{OrderNumber: "ORD-000007", Cancelled: false}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "admin-token")

		var body resdto.ParticipantCancelResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.False(body.Cancelled)
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{"no participant", commands.ErrParticipantNotFound, http.StatusNotFound, "Participant not found"},
			{"no order", commands.ErrOrderNotFound, http.StatusNotFound, "Order not found"},
			{"internal", errors.New("database error"), http.StatusInternalServerError, "Participant cancellation failed"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CancelParticipant(gomock.Any(), gomock.Any()).Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "admin-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}
