package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/stmtgen/internal/common"
	"github.com/Veraticus/stmtgen/internal/model"
)

// DefaultTemplate is used when neither the config file nor --template
// supplies one.
func DefaultTemplate() model.TransactionTemplate {
	return model.TransactionTemplate{
		Name: "default",
		TransactionDescriptions: model.TransactionDescriptions{
			Deposits: []string{
				"Cash Deposit",
				"Salary Credit",
				"Fund Transfer Received",
				"Cheque Deposit",
				"Remittance Received",
				"Mobile Banking Transfer In",
			},
			Withdrawals: []string{
				"ATM Withdrawal",
				"Cheque Withdrawal",
				"Fund Transfer Sent",
				"Utility Bill Payment",
				"POS Purchase",
				"Mobile Banking Transfer Out",
			},
			Interest: "Interest Capitalised",
			Tax:      "TDS on Interest",
		},
		Statement: model.StatementLayout{
			AccountInfo: model.AccountInfo{Boxed: true},
		},
	}
}

// LoadTemplate reads the "template" section of the global configuration,
// falling back to DefaultTemplate for anything it leaves out.
func LoadTemplate() (model.TransactionTemplate, error) {
	if !viper.IsSet("template") {
		return DefaultTemplate(), nil
	}

	var loaded model.TransactionTemplate
	if err := viper.UnmarshalKey("template", &loaded); err != nil {
		return model.TransactionTemplate{}, fmt.Errorf("%w: template: %w", common.ErrInvalidConfig, err)
	}

	tmpl := mergeTemplate(DefaultTemplate(), loaded, viper.IsSet("template.statement.account_info.boxed"))
	if err := ValidateTemplate(tmpl); err != nil {
		return model.TransactionTemplate{}, err
	}
	return tmpl, nil
}

// LoadTemplateFile reads a standalone template file (YAML, JSON or TOML by
// extension) with the template fields at the top level.
func LoadTemplateFile(path string) (model.TransactionTemplate, error) {
	v := viper.New()
	v.SetConfigFile(ExpandPath(path))
	if err := v.ReadInConfig(); err != nil {
		return model.TransactionTemplate{}, fmt.Errorf("failed to read template %s: %w", path, err)
	}

	var loaded model.TransactionTemplate
	if err := v.Unmarshal(&loaded); err != nil {
		return model.TransactionTemplate{}, fmt.Errorf("%w: template %s: %w", common.ErrInvalidConfig, path, err)
	}

	tmpl := mergeTemplate(DefaultTemplate(), loaded, v.IsSet("statement.account_info.boxed"))
	if err := ValidateTemplate(tmpl); err != nil {
		return model.TransactionTemplate{}, fmt.Errorf("template %s: %w", path, err)
	}
	return tmpl, nil
}

// mergeTemplate overlays the non-empty fields of loaded onto base. Lists are
// replaced whole, never merged element by element.
func mergeTemplate(base, loaded model.TransactionTemplate, boxedSet bool) model.TransactionTemplate {
	if loaded.Name != "" {
		base.Name = loaded.Name
	}
	d := loaded.TransactionDescriptions
	if len(d.Deposits) > 0 {
		base.TransactionDescriptions.Deposits = d.Deposits
	}
	if len(d.Withdrawals) > 0 {
		base.TransactionDescriptions.Withdrawals = d.Withdrawals
	}
	if d.Interest != "" {
		base.TransactionDescriptions.Interest = d.Interest
	}
	if d.Tax != "" {
		base.TransactionDescriptions.Tax = d.Tax
	}
	if boxedSet {
		base.Statement.AccountInfo.Boxed = loaded.Statement.AccountInfo.Boxed
	}
	return base
}

// ValidateTemplate rejects templates the generator cannot narrate with.
func ValidateTemplate(tmpl model.TransactionTemplate) error {
	d := tmpl.TransactionDescriptions
	pools := []struct {
		name  string
		descs []string
	}{
		{"deposits", d.Deposits},
		{"withdrawals", d.Withdrawals},
	}
	for _, pool := range pools {
		if len(pool.descs) == 0 {
			return fmt.Errorf("%w: template has no %s descriptions", common.ErrInvalidConfig, pool.name)
		}
		for i, desc := range pool.descs {
			if strings.TrimSpace(desc) == "" {
				return fmt.Errorf("%w: %s description %d is blank", common.ErrInvalidConfig, pool.name, i)
			}
		}
	}
	if strings.TrimSpace(d.Interest) == "" || strings.TrimSpace(d.Tax) == "" {
		return fmt.Errorf("%w: template needs interest and tax descriptions", common.ErrInvalidConfig)
	}
	return nil
}
