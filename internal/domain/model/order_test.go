package model_test

import (
	"testing"

	"app/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from model.OrderStatus
		to   model.OrderStatus
		want bool
	}{
		{model.OrderStatusPending, model.OrderStatusAccepted, true},
		{model.OrderStatusPending, model.OrderStatusDeclined, true},
		{model.OrderStatusPending, model.OrderStatusShipped, false},
		{model.OrderStatusPending, model.OrderStatusDelivered, false},
		{model.OrderStatusAccepted, model.OrderStatusShipped, true},
		{model.OrderStatusAccepted, model.OrderStatusDeclined, true},
		{model.OrderStatusAccepted, model.OrderStatusOutForDelivery, false},
		{model.OrderStatusShipped, model.OrderStatusOutForDelivery, true},
		{model.OrderStatusShipped, model.OrderStatusAccepted, false},
		{model.OrderStatusOutForDelivery, model.OrderStatusDelivered, true},
		{model.OrderStatusOutForDelivery, model.OrderStatusDeclined, true},
		//終端からはどこにも行けない
		{model.OrderStatusDelivered, model.OrderStatusDeclined, false},
		{model.OrderStatusDeclined, model.OrderStatusPending, false},
		{model.OrderStatusDeclined, model.OrderStatusAccepted, false},
	}

	for _, c := range cases {
		t.Run(string(c.from)+"_to_"+string(c.to), func(t *testing.T) {
			assert.Equal(t, c.want, c.from.CanTransitionTo(c.to))
		})
	}
}

func TestOrderStatus_Valid(t *testing.T) {
	assert.True(t, model.OrderStatus("OUT_FOR_DELIVERY").Valid())
	assert.False(t, model.OrderStatus("CANCELED").Valid())
	assert.False(t, model.OrderStatus("").Valid())
}

func TestPaymentStatus_OrderPaymentState(t *testing.T) {
	assert.Equal(t, model.OrderPaymentUnpaid, model.PaymentStatusPending.OrderPaymentState())
	assert.Equal(t, model.OrderPaymentPaid, model.PaymentStatusPaid.OrderPaymentState())
	assert.Equal(t, model.OrderPaymentFailed, model.PaymentStatusFailed.OrderPaymentState())
}
