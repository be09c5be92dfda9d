package service

import (
	"errors"

	"testhub_backend/internal/model"
	"testhub_backend/internal/repository"
	"testhub_backend/internal/util"

	"gorm.io/gorm"
)

// AccessService decides whether a caller may view a test's gated content.
// Free tests always pass; paid tests need a confirmed purchase; admins pass
// unconditionally and never leave a purchase row behind.
type AccessService struct {
	TestRepo     *repository.TestRepository
	PurchaseRepo *repository.PurchaseRepository
}

func NewAccessService(testRepo *repository.TestRepository, purchaseRepo *repository.PurchaseRepository) *AccessService {
	return &AccessService{
		TestRepo:     testRepo,
		PurchaseRepo: purchaseRepo,
	}
}

// CheckAccess returns the test when access is granted. A missing test is
// ErrTestNotFound (404); an unpurchased paid test is ErrPurchaseRequired
// (403) — callers must keep those distinct.
func (s *AccessService) CheckAccess(userID uint, isAdmin bool, testID uint) (*model.Test, error) {
	test, err := s.TestRepo.FindByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}

	if !test.IsPaid() {
		return test, nil
	}

	if isAdmin {
		return test, nil
	}

	if _, err := s.PurchaseRepo.FindPaid(userID, testID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPurchaseRequired
		}
		return nil, err
	}

	return test, nil
}

// HasAccess is the boolean form used by listings.
func (s *AccessService) HasAccess(userID uint, isAdmin bool, testID uint) (bool, error) {
	_, err := s.CheckAccess(userID, isAdmin, testID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, util.ErrPurchaseRequired) {
		return false, nil
	}
	return false, err
}
