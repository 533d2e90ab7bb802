package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/getlayar/perks-core/internal/app/errors"
	"github.com/getlayar/perks-core/internal/app/models"
	"github.com/getlayar/perks-core/internal/infrastructures"
)

type AccountService struct {
	db             *gorm.DB
	validator      *infrastructures.Validator
	connectService *ConnectService
}

func NewAccountService(db *gorm.DB, validator *infrastructures.Validator, connectService *ConnectService) *AccountService {
	return &AccountService{
		db:             db,
		validator:      validator,
		connectService: connectService,
	}
}

func (s *AccountService) CreateAccount(accessToken string) (*models.Account, error) {
	connectUser, err := s.connectService.GetCurrentUser(accessToken)
	if err != nil {
		return nil, err
	}

	var existingAccount models.Account
	err = s.db.Where("connect_id = ?", connectUser.ID).First(&existingAccount).Error
	if err == nil {
		return nil, errors.NewBadRequestError("Account already exists")
	}
	if err != gorm.ErrRecordNotFound {
		return nil, errors.NewInternalServerError(err, "Failed to check account")
	}

	account := &models.Account{
		ConnectID: connectUser.ID,
		Points:    0,
	}

	if err := s.db.Create(account).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to create account")
	}

	return account, nil
}

func (s *AccountService) GetAccount(connectId string) (*models.Account, error) {
	connectUUID, err := uuid.Parse(connectId)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid connect ID format")
	}

	var account models.Account
	err = s.db.Where("connect_id = ?", connectUUID).First(&account).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Account not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get account")
	}

	return &account, nil
}

func (s *AccountService) GetPointsHistory(connectId string, limit, offset int) ([]models.PointsEntry, error) {
	connectUUID, err := uuid.Parse(connectId)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid connect ID format")
	}

	if limit <= 0 {
		limit = 20
	}

	var entries []models.PointsEntry
	query := s.db.Where("account_id = ?", connectUUID).
		Order("created_at DESC").
		Limit(limit)
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&entries).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get points history")
	}

	return entries, nil
}

// ApplyDelta is the single mutation primitive for the points balance. The
// balance write is conditional on the account still covering a debit at write
// time, and every successful write appends a ledger entry carrying the
// balance-after snapshot. Callers must run it inside a transaction.
func (s *AccountService) ApplyDelta(tx *gorm.DB, accountID uuid.UUID, amount int64, reason string, redemptionID *uuid.UUID) (*models.PointsEntry, error) {
	query := tx.Model(&models.Account{}).Where("connect_id = ?", accountID)
	if amount < 0 {
		query = query.Where("points >= ?", -amount)
	}

	result := query.UpdateColumn("points", gorm.Expr("points + ?", amount))
	if result.Error != nil {
		return nil, errors.NewInternalServerError(result.Error, "Failed to update points balance")
	}
	if result.RowsAffected == 0 {
		if amount < 0 {
			return nil, errors.NewBadRequestError("Insufficient points balance [" + ErrCodeInsufficientPoints + "]")
		}
		return nil, errors.NewNotFoundError("Account not found")
	}

	var account models.Account
	if err := tx.Where("connect_id = ?", accountID).First(&account).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to read points balance")
	}

	entry := &models.PointsEntry{
		AccountID:    accountID,
		Amount:       amount,
		BalanceAfter: account.Points,
		Reason:       reason,
		RedemptionID: redemptionID,
	}

	if err := tx.Create(entry).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to append points entry")
	}

	return entry, nil
}

// AdjustPoints applies an admin award or revoke through the ledger.
func (s *AccountService) AdjustPoints(connectId string, req *models.PointsAdjustRequest) (*models.Account, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	connectUUID, err := uuid.Parse(connectId)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid connect ID format")
	}

	if req.Reason == models.PointsReasonAdminAward && req.Amount < 0 {
		return nil, errors.NewBadRequestError("Award amount must be positive")
	}
	if req.Reason == models.PointsReasonAdminRevoke && req.Amount > 0 {
		return nil, errors.NewBadRequestError("Revoke amount must be negative")
	}

	var account models.Account
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Set("gorm:query_option", "FOR UPDATE").Where("connect_id = ?", connectUUID).First(&account).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.NewNotFoundError("Account not found")
			}
			return errors.NewInternalServerError(err, "Failed to get account")
		}

		entry, err := s.ApplyDelta(tx, connectUUID, req.Amount, req.Reason, nil)
		if err != nil {
			return err
		}

		account.Points = entry.BalanceAfter
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &account, nil
}
