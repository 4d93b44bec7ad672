package api_test

import (
	"net/http"
	"testing"
	"time"

	"course-checkout/internal/handler/api"
	resdto "course-checkout/internal/handler/dto/response"
	"course-checkout/internal/testutil/httptest"
	queriesmock "course-checkout/internal/testutil/mock/queries"
	"course-checkout/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrderHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockOrderQueries
}

func (s *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	s.router.GET("/api/orders/:orderNumber", fakeAuth(true), api.NewOrderHandler(s.mockQueries).Get)
}

func (s *OrderHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

func practicalView() *queries.OrderView {
	paidAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	offeringID := uuid.MustParse("0b1d8a8e-7f6c-4a1e-8a53-9a2f3f6c1c01")
	return &queries.OrderView{
		ID:          uuid.MustParse("8d3a7f4e-2b1c-4c5d-9e6f-0a1b2c3d4e5f"),
		OrderNumber: "ORD-000007",
		UserID:      authUserID,
		OrderType:   "practical",
		Status:      "paid",
		Currency:    "eur",
		TotalCents:  30821,
		Items: []queries.OrderItemView{
			{Kind: "practical_seat", RefID: offeringID, Name: "Practical training Berlin", NetCents: 24900, GrossCents: 29631},
			{Kind: "plastic_card", RefID: offeringID, Name: "Plastic certificate card", NetCents: 1000, GrossCents: 1190},
		},
		BuyerEmail: "anna@example.com",
		BuyerName:  "Anna Schmidt",
		Practical: &queries.PracticalView{
			OfferingID:      offeringID,
			DateID:          uuid.MustParse("1c2d3e4f-5a6b-4c7d-8e9f-a0b1c2d3e4f5"),
			LocationName:    "Training Center Mitte",
			Street:          "Invalidenstr. 1",
			City:            "Berlin",
			StartsAt:        paidAt.Add(14 * 24 * time.Hour),
			WithPlasticCard: true,
		},
		Invoice:   &queries.InvoiceView{Number: "RE-0001", PDFURL: "https://invoices.example.com/RE-0001.pdf"},
		PaidAt:    &paidAt,
		CreatedAt: paidAt.Add(-time.Minute),
	}
}

func (s *OrderHandlerTestSuite) TestGet() {
	s.Run("success: owner reads the order", func() {
		view := practicalView()
		s.mockQueries.EXPECT().
			GetOrder(gomock.Any(), queries.Viewer{UserID: authUserID, IsAdmin: false}, "ORD-000007").
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/orders/ORD-000007", nil, "bearer-token")

		var body resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)

		want := resdto.OrderResponse{
			ID:          view.ID,
			OrderNumber: "ORD-000007",
			OrderType:   "practical",
			Status:      "paid",
			Currency:    "eur",
			TotalCents:  30821,
			Items: []resdto.OrderItemResponse{
				{Kind: "practical_seat", RefID: view.Items[0].RefID, Name: "Practical training Berlin", NetCents: 24900, GrossCents: 29631},
				{Kind: "plastic_card", RefID: view.Items[1].RefID, Name: "Plastic certificate card", NetCents: 1000, GrossCents: 1190},
			},
			BuyerEmail: "anna@example.com",
			BuyerName:  "Anna Schmidt",
			Practical: &resdto.PracticalResponse{
				OfferingID:      view.Practical.OfferingID,
				DateID:          view.Practical.DateID,
				LocationName:    "Training Center Mitte",
				Street:          "Invalidenstr. 1",
				City:            "Berlin",
				StartsAt:        view.Practical.StartsAt,
				WithPlasticCard: true,
			},
			Invoice:   &resdto.InvoiceResponse{Number: "RE-0001", PDFURL: "https://invoices.example.com/RE-0001.pdf"},
			PaidAt:    view.PaidAt,
			CreatedAt: view.CreatedAt,
		}
		if diff := cmp.Diff(want, body); diff != "" {
			s.T().Errorf("order response mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("success: admin viewer flag is forwarded", func() {
		s.mockQueries.EXPECT().
			GetOrder(gomock.Any(), queries.Viewer{UserID: authUserID, IsAdmin: true}, "ORD-000007").
			Return(practicalView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/orders/ORD-000007", nil, "admin-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/orders/ORD-000007", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 404 for unknown or foreign orders", func() {
		s.mockQueries.EXPECT().GetOrder(gomock.Any(), gomock.Any(), "ORD-999999").
			Return(nil, queries.ErrOrderNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/orders/ORD-999999", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Order not found")
	})
}
