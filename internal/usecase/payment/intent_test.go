package usecase

import (
	"errors"
	"regexp"
	"testing"

	"github.com/mathbridge/mathbridge-backend/internal/domain"
	paymentdto "github.com/mathbridge/mathbridge-backend/internal/usecase/dto/payment"
)

func TestCreateDepositIntentSePayReference(t *testing.T) {
	fx := newWebhookFixture(t)
	fx.uc.WalletRepo.(*fakeWalletRepo).wallets["parent-1"] = &domain.Wallet{ID: "w-1", UserID: "parent-1"}

	out, err := fx.uc.CreateDepositIntent(&paymentdto.CreateDepositInput{
		UserID:   "11111111-1111-4111-8111-111111111111",
		Amount:   500000,
		Provider: "sepay",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		// the fixture has no wallet for the uuid user, expect not found
		t.Fatalf("expected ErrNotFound for missing wallet, got %v (out=%+v)", err, out)
	}

	fx.uc.WalletRepo.(*fakeWalletRepo).wallets["11111111-1111-4111-8111-111111111111"] = &domain.Wallet{
		ID: "w-2", UserID: "11111111-1111-4111-8111-111111111111",
	}
	out, err = fx.uc.CreateDepositIntent(&paymentdto.CreateDepositInput{
		UserID:   "11111111-1111-4111-8111-111111111111",
		Amount:   500000,
		Provider: "sepay",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !regexp.MustCompile(`^MB[0-9A-Z]{12}$`).MatchString(out.OrderReference) {
		t.Errorf("sepay reference %q does not match MB pattern", out.OrderReference)
	}
	gtx, err := fx.gateway.GetByOrderReference(out.OrderReference)
	if err != nil {
		t.Fatalf("gateway row not created: %v", err)
	}
	if gtx.Status != domain.TxStatusPending {
		t.Errorf("gateway status = %s, want Pending", gtx.Status)
	}
	if gtx.ExpectedAmount != 500000 {
		t.Errorf("expected amount = %v", gtx.ExpectedAmount)
	}
}

func TestCreateContractPaymentIntentPayOSReference(t *testing.T) {
	fx := newWebhookFixture(t)

	contracts := fx.uc.ContractRepo.(*fakeContractRepo).contracts
	contracts["22222222-2222-4222-8222-222222222222"] = &domain.Contract{
		ID:      "22222222-2222-4222-8222-222222222222",
		Status:  domain.ContractUnpaid,
		Package: &domain.Package{ID: "p-1", Price: 2000000},
	}

	out, err := fx.uc.CreateContractPaymentIntent(&paymentdto.CreateContractPaymentInput{
		ContractID: "22222222-2222-4222-8222-222222222222",
		Provider:   "payos",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !regexp.MustCompile(`^[1-9]{12}$`).MatchString(out.OrderReference) {
		t.Errorf("payos reference %q is not a 12-digit numeric code", out.OrderReference)
	}
	if out.Amount != 2000000 {
		t.Errorf("amount = %v, want package price 2000000", out.Amount)
	}
}

func TestCreateContractPaymentIntentRejectsNonUnpaid(t *testing.T) {
	fx := newWebhookFixture(t)

	contracts := fx.uc.ContractRepo.(*fakeContractRepo).contracts
	contracts["33333333-3333-4333-8333-333333333333"] = &domain.Contract{
		ID:      "33333333-3333-4333-8333-333333333333",
		Status:  domain.ContractActive,
		Package: &domain.Package{ID: "p-1", Price: 2000000},
	}

	_, err := fx.uc.CreateContractPaymentIntent(&paymentdto.CreateContractPaymentInput{
		ContractID: "33333333-3333-4333-8333-333333333333",
		Provider:   "sepay",
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}
