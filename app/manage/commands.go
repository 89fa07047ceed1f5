package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"recipe-app-api/app/server/accounts"
	"recipe-app-api/app/server/constants"
	"recipe-app-api/app/server/store"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var errUnknownCommand = errors.New("unknown command")

type commands struct {
	st  store.Accounts
	m   *accounts.Manager
	rdb *redis.Client // 可以为 nil
	l   *zap.Logger
}

func newCommands(st store.Accounts, m *accounts.Manager, rdb *redis.Client, l *zap.Logger) *commands {
	return &commands{st: st, m: m, rdb: rdb, l: l}
}

func run(ctx context.Context, cmds *commands, name string, args []string) error {
	switch name {
	case "createsuperuser":
		return cmds.createSuperuser(ctx, args)
	case "deleteaccount":
		return cmds.deleteAccount(ctx, args)
	default:
		return fmt.Errorf("%w: %s", errUnknownCommand, name)
	}
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func (cmds *commands) createSuperuser(ctx context.Context, args []string) error {
	fs := newFlagSet("createsuperuser")
	email := fs.String("email", "", "email of the new account")
	password := fs.String("password", "", "password of the new account")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	if *password == "" {
		return fmt.Errorf("password is required")
	}

	account, err := cmds.m.CreatePrivilegedAccount(ctx, *email, *password)
	if err != nil {
		return err
	}

	cmds.l.Info("superuser created", zap.Uint("id", account.ID), zap.String("email", account.Email))
	return nil
}

func (cmds *commands) deleteAccount(ctx context.Context, args []string) error {
	fs := newFlagSet("deleteaccount")
	email := fs.String("email", "", "email of the account to delete")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	account, err := cmds.st.FindAccountByEmail(ctx, accounts.NormalizeEmail(*email))
	if err != nil {
		return err
	}

	// token 会跟随账户一起删除，先记下它的 key 用来清理缓存
	var tokenKey string
	if cmds.rdb != nil {
		token, err := cmds.st.FindToken(ctx, account.ID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if token != nil {
			tokenKey = token.Key
		}
	}

	// 菜谱、标签、食材和 token 跟随账户一并删除
	if err = cmds.st.DeleteAccount(ctx, account.ID); err != nil {
		return err
	}

	// 清理缓存，否则旧 token 在过期前仍然能通过认证
	if tokenKey != "" {
		if err = cmds.rdb.Del(ctx, fmt.Sprintf(constants.CacheKeyTokenAccount, tokenKey)).Err(); err != nil {
			return fmt.Errorf("account deleted but token cache remains: %w", err)
		}
	}

	cmds.l.Info("account deleted", zap.Uint("id", account.ID), zap.String("email", account.Email))
	return nil
}
