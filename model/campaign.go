package model

import "time"

type Campaign struct {
	Id        uint32 `storm:"id,increment"`
	Ref       string `storm:"unique"`
	Sender    string
	Text      string
	CreatedAt time.Time `storm:"index"`
}
