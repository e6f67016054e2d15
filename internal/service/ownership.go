package service

import (
	"github.com/millerforce/CSCN73060-Project-1/internal/errors"

	"github.com/google/uuid"
)

// assertOwner 校验请求者是否为资源所有者。
// 点赞操作不走这里，任何已登录账户都可以点赞任意帖子和评论。
func assertOwner(ownerID, requesterID uuid.UUID) error {
	if ownerID != requesterID {
		return errors.New(errors.ErrForbidden, "只有作者才能执行此操作")
	}
	return nil
}
