package data

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/cr4652060-hue/kb-system/internal/conf"
	"github.com/cr4652060-hue/kb-system/internal/model"
)

// Data 结构体持有所有数据库句柄
type Data struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Minio  *minio.Client
	Bucket string
}

func NewData(cfg *conf.Config) (*Data, func(), error) {
	// 1. 连接 Postgres
	db, err := gorm.Open(postgres.Open(cfg.Data.DatabaseSource), &gorm.Config{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %v", err)
	}

	// 自动迁移：账号表、知识表、导入流水表
	if err := db.AutoMigrate(
		&model.UserAccount{},
		&model.KnowledgeRecord{},
		&model.ImportLog{},
	); err != nil {
		return nil, nil, fmt.Errorf("schema migration failed: %v", err)
	}
	logrus.Info("✅ 数据库表结构迁移完成")

	// 2. 初始化 Redis (会话存储)
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Data.RedisAddr,
		Password: cfg.Data.RedisPassword,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, nil, fmt.Errorf("redis 连接失败: %v", err)
	}
	logrus.Info("✅ Redis 连接成功")

	// 3. 初始化 MinIO (导入归档 + 模板缓存)
	minioClient, err := minio.New(cfg.Data.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Data.MinioAccessKey, cfg.Data.MinioSecretKey, ""),
		Secure: false,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("minio 初始化失败: %v", err)
	}

	bucketName := cfg.Data.MinioBucket
	if bucketName == "" {
		bucketName = "kb-files" // 兜底
	}
	exists, err := minioClient.BucketExists(context.Background(), bucketName)
	if err != nil {
		return nil, nil, fmt.Errorf("检查 MinIO Bucket 失败: %v", err)
	}
	if !exists {
		if err := minioClient.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, nil, fmt.Errorf("创建 MinIO Bucket 失败: %v", err)
		}
		logrus.Infof("🎉 MinIO Bucket '%s' 创建成功", bucketName)
	} else {
		logrus.Infof("✅ MinIO 连接成功 (Bucket '%s' 已存在)", bucketName)
	}

	d := &Data{
		DB:     db,
		Redis:  rdb,
		Minio:  minioClient,
		Bucket: bucketName,
	}

	cleanup := func() {
		logrus.Info("正在关闭数据层资源...")
		if sqlDB, err := d.DB.DB(); err == nil {
			sqlDB.Close()
		}
		d.Redis.Close()
	}

	return d, cleanup, nil
}
