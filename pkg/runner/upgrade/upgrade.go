package upgrade

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/wayfare/pkg/store"
)

// Upgrade marks the account premium. There is no real payment processor
// behind this; it stands in for the subscription flow reporting success.
type Upgrade struct {
	Persistence store.Persistence
}

func (n *Upgrade) Do(_ context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not upgrade, no persistence")
	}
	if n.Persistence.Premium() {
		fmt.Println("already premium")
		return nil
	}
	if err := n.Persistence.SetPremium(true); err != nil {
		return err
	}
	fmt.Println("premium enabled; new activities can now be saved")
	return nil
}
